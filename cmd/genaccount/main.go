package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/hashes"
)

// genaccount generates an account identity: a BIP-39 mnemonic, the
// secp256k1 keypair derived from it, and the on-chain account ID, which
// is the hash of the serialized public key. Passing --mnemonic recovers
// an existing account instead of creating a new one.

type options struct {
	Mnemonic string `short:"m" long:"mnemonic" description:"Recover an account from an existing BIP-39 mnemonic instead of generating a new one"`
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	opts := &options{}
	_, err := flags.NewParser(opts, flags.HelpFlag).Parse()
	if err != nil {
		return err
	}

	mnemonic := opts.Mnemonic
	if mnemonic == "" {
		entropy, err := bip39.NewEntropy(256)
		if err != nil {
			return errors.Wrap(err, "failed to generate entropy")
		}
		mnemonic, err = bip39.NewMnemonic(entropy)
		if err != nil {
			return errors.Wrap(err, "failed to generate a mnemonic")
		}
	} else if !bip39.IsMnemonicValid(mnemonic) {
		return errors.Errorf("the given mnemonic is not a valid BIP-39 phrase")
	}

	seed := bip39.NewSeed(mnemonic, "")
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(seed[:32])
	if err != nil {
		return errors.Wrap(err, "failed to derive a private key from the mnemonic")
	}
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return errors.Wrap(err, "failed to derive the public key")
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return errors.Wrap(err, "failed to serialize the public key")
	}

	writer := hashes.NewAccountIDHashWriter()
	writer.InfallibleWrite(serializedPublicKey[:])
	accountID := externalapi.NewAccountIDFromByteArray(writer.Finalize().BytesArray())

	fmt.Println("This mnemonic recovers the account. Keep it safe and offline.")
	fmt.Printf("Mnemonic:\t%s\n\n", mnemonic)
	fmt.Printf("Private key (hex):\t%x\n", keyPair.SerializePrivateKey()[:])
	fmt.Printf("Public key (hex):\t%x\n", serializedPublicKey[:])
	fmt.Printf("Account ID:\t%s\n", accountID)
	return nil
}
