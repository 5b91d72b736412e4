package consensus

import (
	"time"

	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/processes/blockvalidator"
	"github.com/wmchain/wmchaind/domain/consensus/processes/forkchoice"
	"github.com/wmchain/wmchaind/infrastructure/metrics"
)

// Config holds the engine tunables. It is a plain value object so tests
// can build engines without the flags layer.
type Config struct {
	MaxBlockSize         uint64
	MaxBlockTransactions uint64
	MaxArtefactsPerBlock uint64
	VerifyTimeout        time.Duration

	AllowEmptyBlocks      bool
	AdmitOnVerifierOutage bool

	// RequeueRejectedTransactions returns a rejected proposal's draw to
	// the transaction source instead of dropping it. Off by default: a
	// rejected registration stays rejected on every retry, so requeueing
	// can wedge the proposal loop on a poisoned transaction.
	RequeueRejectedTransactions bool
}

// Factory instantiates new Consensus instances
type Factory interface {
	NewConsensus(config *Config, store model.BlockStore, verifier model.MLVerifier,
		metrics *metrics.Metrics) Consensus
}

type factory struct{}

// NewFactory creates a new Consensus factory
func NewFactory() Factory {
	return &factory{}
}

func (f *factory) NewConsensus(config *Config, store model.BlockStore,
	verifier model.MLVerifier, metrics *metrics.Metrics) Consensus {

	baseValidity := blockvalidator.NewBaseValidity(
		store, config.MaxBlockSize, config.MaxBlockTransactions, config.AllowEmptyBlocks)
	mlValidity := blockvalidator.NewMLValidity(
		store, verifier, metrics, config.MaxArtefactsPerBlock, config.VerifyTimeout,
		config.AdmitOnVerifierOutage)

	return &consensus{
		store:          store,
		blockValidator: blockvalidator.New(baseValidity, mlValidity, metrics),
		forkChoice:     forkchoice.New(),
		metrics:        metrics,
		config:         config,
	}
}
