package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus"
	"github.com/wmchain/wmchaind/domain/consensus/datastructures/blockstore"
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensushashing"
	"github.com/wmchain/wmchaind/domain/consensus/utils/hashes"
	"github.com/wmchain/wmchaind/domain/mempool"
	"github.com/wmchain/wmchaind/infrastructure/config"
	"github.com/wmchain/wmchaind/infrastructure/db/database/ldb"
	"github.com/wmchain/wmchaind/infrastructure/logger"
	"github.com/wmchain/wmchaind/infrastructure/metrics"
	"github.com/wmchain/wmchaind/infrastructure/network/mlclient"
	"github.com/wmchain/wmchaind/signal"
	"github.com/wmchain/wmchaind/util/panics"
	"github.com/wmchain/wmchaind/version"
)

// StartApp loads the configuration, wires the node together, and runs the
// proposal loop until an interrupt arrives.
func StartApp() error {
	interrupt := signal.InterruptListener()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	err = os.MkdirAll(cfg.AppDir, 0700)
	if err != nil {
		return errors.Wrapf(err, "failed to create the data directory %s", cfg.AppDir)
	}
	err = os.MkdirAll(cfg.LogDir, 0700)
	if err != nil {
		return errors.Wrapf(err, "failed to create the log directory %s", cfg.LogDir)
	}
	logger.InitLog(cfg.LogFile(), cfg.ErrLogFile())
	err = logger.SetLogLevels(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Close()
	defer panics.HandlePanic(log, "MAIN", nil)

	log.Infof("Version %s", version.Version())
	log.Infof("Data directory: %s", cfg.AppDir)

	nodeMetrics := metrics.New()
	if cfg.MetricsListen != "" {
		nodeMetrics.Start(cfg.MetricsListen)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	engine := consensus.NewFactory().NewConsensus(&consensus.Config{
		MaxBlockSize:                cfg.MaxBlockSize,
		MaxBlockTransactions:        cfg.MaxBlockTransactions,
		MaxArtefactsPerBlock:        cfg.MaxArtefactsPerBlock,
		VerifyTimeout:               cfg.VerifyTimeout(),
		AllowEmptyBlocks:            cfg.AllowEmptyBlocks,
		AdmitOnVerifierOutage:       cfg.AdmitOnVerifierOutage,
		RequeueRejectedTransactions: cfg.RequeueRejectedTransactions,
	}, store, mlclient.New(cfg.MLServerURL), nodeMetrics)

	pool := mempool.New()
	proposerID := deriveProposerID()
	log.Infof("Proposer identity: %s", proposerID)
	log.Infof("Verification service: %s", cfg.MLServerURL)

	stopLoop := make(chan struct{})
	spawn("proposalLoop", func() {
		proposalLoop(engine, pool, proposerID, cfg.ProposalInterval(), stopLoop)
	})

	<-interrupt
	close(stopLoop)
	log.Infof("Shutdown complete")
	return nil
}

// proposalLoop drives block production at a fixed interval. An empty pool
// skips the tick; a rejected proposal is logged and the loop keeps going.
func proposalLoop(engine consensus.Consensus, pool *mempool.Mempool,
	proposerID *externalapi.AccountID, interval time.Duration, stop <-chan struct{}) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			timestamp := uint64(time.Now().UnixNano() / int64(time.Millisecond))
			block, err := engine.ProposeBlock(proposerID, pool, timestamp)
			switch {
			case errors.Is(err, consensus.ErrNothingToPropose):
				log.Debugf("Transaction pool is empty, skipping this proposal")
			case err != nil:
				log.Warnf("Block proposal rejected: %s", err)
			default:
				log.Infof("Proposed block %s at height %d",
					consensushashing.BlockHash(block), block.Header.Height)
			}
		}
	}
}

func openStore(cfg *config.Config) (model.BlockStore, func(), error) {
	if cfg.InMemoryStore {
		log.Infof("Keeping chain state in memory")
		return blockstore.NewInMemory(), func() {}, nil
	}

	db, err := ldb.NewLevelDB(cfg.DatabaseDir(), cfg.DatabaseCacheSizeMiB())
	if err != nil {
		return nil, nil, err
	}
	log.Infof("Chain state database: %s", cfg.DatabaseDir())
	closeStore := func() {
		err := db.Close()
		if err != nil {
			log.Errorf("Failed to close the database: %s", err)
		}
	}
	return blockstore.New(db), closeStore, nil
}

// deriveProposerID builds a stable demo identity for this node process.
// Real deployments would load a signing key instead.
func deriveProposerID() *externalapi.AccountID {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "wmchaind"
	}
	writer := hashes.NewAccountIDHashWriter()
	writer.InfallibleWrite([]byte(fmt.Sprintf("%s/%d", hostname, os.Getpid())))
	return externalapi.NewAccountIDFromByteArray(writer.Finalize().BytesArray())
}
