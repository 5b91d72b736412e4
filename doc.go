/*
Wmchaind is a single-node watermark-chain daemon written in Go.

The node accepts model-registration, model-use, and transfer transactions
into a FIFO pool, proposes a block on a fixed interval, and only accepts a
block once every watermark registration inside it has been authenticated
against an external verification service.

The default options are sane for most users. This means wmchaind will work
'out of the box' for most users. However, there are also a wide variety of
flags that can be used to control it.

Usage:

	wmchaind [OPTIONS]

For an up-to-date help message:

	wmchaind --help

The long form of all option flags (except -C) can be specified in a
configuration file that is automatically parsed when wmchaind starts up. By
default, the configuration file is located at ~/.wmchaind/wmchaind.conf on
POSIX-style operating systems and %LOCALAPPDATA%\wmchaind\wmchaind.conf on
Windows. The -C (--configfile) flag can be used to override this location.
*/
package main
