package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/infrastructure/logger"
	"github.com/wmchain/wmchaind/version"
)

const (
	defaultConfigFilename = "wmchaind.conf"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "wmchaind.log"
	defaultErrLogFilename = "wmchaind_err.log"
	defaultDbDirname      = "db"
	defaultLogLevel       = "info"

	defaultMLServerURL     = "http://127.0.0.1:8080"
	defaultMLVerifyTimeout = 2000
	defaultBlockInterval   = 5000
	defaultMaxBlockSize    = 1 << 20
	defaultMaxBlockTxs     = 1024
	defaultMaxArtefacts    = 1024
	defaultMetricsListen   = "127.0.0.1:9187"
	defaultDbCacheSizeMiB  = 256
)

// DefaultAppDir is the default home directory for wmchaind.
var DefaultAppDir = btcutil.AppDataDir("wmchaind", false)

var defaultConfigFile = filepath.Join(DefaultAppDir, defaultConfigFilename)

// Flags holds every command-line option of the node. Long option names
// double as the keys of the optional ini-style config file.
type Flags struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	AppDir      string `short:"b" long:"appdir" description:"Directory to store data"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	LogLevel    string `short:"d" long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`

	MLServerURL     string `long:"mlserver" description:"URL of the watermark-verification service"`
	MLVerifyTimeout uint64 `long:"mlverifytimeout" description:"Timeout of a single verification call, in milliseconds"`

	BlockInterval        uint64 `long:"blockinterval" description:"Interval between block proposals, in milliseconds"`
	MaxBlockSize         uint64 `long:"maxblocksize" description:"Maximum serialized block size, in bytes"`
	MaxBlockTransactions uint64 `long:"maxblocktxs" description:"Maximum number of transactions per block"`
	MaxArtefactsPerBlock uint64 `long:"maxartefacts" description:"Maximum number of distinct artefacts verified per block"`

	AllowEmptyBlocks            bool `long:"allowemptyblocks" description:"Propose blocks even when the transaction pool is empty"`
	AdmitOnVerifierOutage       bool `long:"admitonverifieroutage" description:"Treat verifier timeouts and outages as passing instead of failing"`
	RequeueRejectedTransactions bool `long:"requeuerejectedtxs" description:"Return the transactions of a rejected proposal to the pool instead of dropping them"`

	MetricsListen string `long:"metricslisten" description:"Address to serve prometheus metrics on (empty disables the exporter)"`
	InMemoryStore bool   `long:"inmemorystore" description:"Keep all chain state in memory instead of the database (dev runs)"`
}

// Config wraps the parsed flags. Methods deriving paths and durations
// hang off Config so the rest of the codebase never re-joins paths.
type Config struct {
	*Flags
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile:           defaultConfigFile,
		AppDir:               DefaultAppDir,
		LogLevel:             defaultLogLevel,
		MLServerURL:          defaultMLServerURL,
		MLVerifyTimeout:      defaultMLVerifyTimeout,
		BlockInterval:        defaultBlockInterval,
		MaxBlockSize:         defaultMaxBlockSize,
		MaxBlockTransactions: defaultMaxBlockTxs,
		MaxArtefactsPerBlock: defaultMaxArtefacts,
		MetricsListen:        defaultMetricsListen,
	}
}

// LoadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func LoadConfig() (*Config, error) {
	cfgFlags := defaultFlags()
	parser := flags.NewParser(cfgFlags, flags.HelpFlag)
	_, err := parser.Parse()

	// Show the version and exit if the version flag was specified.
	if cfgFlags.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}
	if err != nil {
		return nil, err
	}

	// A missing default config file is fine; a missing explicitly
	// specified one is not.
	configFileSpecified := cfgFlags.ConfigFile != defaultConfigFile
	if _, statErr := os.Stat(cfgFlags.ConfigFile); statErr == nil || configFileSpecified {
		err = flags.NewIniParser(parser).ParseFile(cfgFlags.ConfigFile)
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing config file %s", cfgFlags.ConfigFile)
		}
		// Parse the command line again so flags take precedence over
		// the config file.
		_, err = parser.Parse()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{Flags: cfgFlags}
	err = cfg.validate()
	if err != nil {
		return nil, err
	}

	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDir, defaultLogDirname)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if _, ok := logger.LevelFromString(cfg.LogLevel); !ok {
		return errors.Errorf("the specified log level [%s] is invalid -- supported levels: %s",
			cfg.LogLevel, strings.Join(logger.SupportedLevels(), ", "))
	}
	if cfg.MLServerURL == "" {
		return errors.Errorf("mlserver must not be empty")
	}
	if cfg.MLVerifyTimeout == 0 {
		return errors.Errorf("mlverifytimeout must be greater than 0")
	}
	if cfg.BlockInterval == 0 {
		return errors.Errorf("blockinterval must be greater than 0")
	}
	if cfg.MaxBlockSize == 0 || cfg.MaxBlockTransactions == 0 {
		return errors.Errorf("maxblocksize and maxblocktxs must be greater than 0")
	}
	return nil
}

// DatabaseDir returns the directory holding the LevelDB store.
func (cfg *Config) DatabaseDir() string {
	return filepath.Join(cfg.AppDir, defaultDbDirname)
}

// DatabaseCacheSizeMiB returns the LevelDB block-cache budget.
func (cfg *Config) DatabaseCacheSizeMiB() int {
	return defaultDbCacheSizeMiB
}

// LogFile returns the path of the rotating main log file.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the rotating error log file.
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

// VerifyTimeout returns the per-call verification timeout as a duration.
func (cfg *Config) VerifyTimeout() time.Duration {
	return time.Duration(cfg.MLVerifyTimeout) * time.Millisecond
}

// ProposalInterval returns the block-proposal interval as a duration.
func (cfg *Config) ProposalInterval() time.Duration {
	return time.Duration(cfg.BlockInterval) * time.Millisecond
}
