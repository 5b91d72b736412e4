package consensus

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensushashing"
	"github.com/wmchain/wmchaind/infrastructure/metrics"
)

// ErrNothingToPropose is returned by ProposeBlock when the transaction
// source is empty and empty blocks are not allowed.
var ErrNothingToPropose = errors.New("no transactions to propose")

// Consensus is the engine's entry point. Proposal and insertion are
// serialized by an internal mutex, so the tip can only advance one block
// at a time.
type Consensus interface {
	// ProposeBlock draws transactions from source, builds a block on top
	// of the current tip with the given timestamp, and runs it through
	// the full insertion path. On rejection nothing is persisted and the
	// returned error names the violated rule or the failing artefacts.
	ProposeBlock(proposerID *externalapi.AccountID, source model.TransactionSource,
		timestamp uint64) (*externalapi.DomainBlock, error)

	// ValidateAndInsertBlock validates an externally built block,
	// persists it, and advances the tip if the fork-choice rule adopts
	// it. Artefact registrations take effect only when the block is
	// adopted.
	ValidateAndInsertBlock(block *externalapi.DomainBlock) error

	// Tip returns the current chain head, or nil before genesis.
	Tip() (*externalapi.TipInfo, error)

	// GetBlock returns a stored block by hash.
	GetBlock(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error)
}

// blockEnvelopeSize is the canonical size of a block with no transactions:
// the fixed-size header plus the transaction-count prefix.
const blockEnvelopeSize = externalapi.DomainHashSize + 8 + 8 + externalapi.DomainHashSize + 8

type consensus struct {
	mtx sync.Mutex

	store          model.BlockStore
	blockValidator model.BlockValidator
	forkChoice     model.ForkChoice
	metrics        *metrics.Metrics
	config         *Config
}

func (c *consensus) ProposeBlock(proposerID *externalapi.AccountID,
	source model.TransactionSource, timestamp uint64) (*externalapi.DomainBlock, error) {

	c.mtx.Lock()
	defer c.mtx.Unlock()

	tip, err := c.store.Tip()
	if err != nil {
		return nil, err
	}

	maxDrawBytes := c.config.MaxBlockSize - blockEnvelopeSize
	transactions, err := source.DrawTransactions(c.config.MaxBlockTransactions, maxDrawBytes)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 && !c.config.AllowEmptyBlocks {
		return nil, ErrNothingToPropose
	}

	parentHash := externalapi.NewZeroHash()
	height := uint64(0)
	if tip != nil {
		parentHash = tip.Hash
		height = tip.Height + 1
	}
	block := &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			ParentHash:      parentHash,
			Height:          height,
			Timestamp:       timestamp,
			TransactionRoot: consensushashing.TransactionRoot(transactions),
		},
		Transactions: transactions,
	}

	err = c.validateAndInsertBlock(block)
	if err != nil {
		if c.config.RequeueRejectedTransactions {
			source.RequeueTransactions(transactions)
		}
		return nil, err
	}

	c.metrics.BlocksProposed.Inc()
	log.Infof("Proposer %s built block %s at height %d with %d transactions",
		proposerID, consensushashing.BlockHash(block), height, len(transactions))
	return block, nil
}

func (c *consensus) ValidateAndInsertBlock(block *externalapi.DomainBlock) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.validateAndInsertBlock(block)
}

func (c *consensus) validateAndInsertBlock(block *externalapi.DomainBlock) error {
	err := c.blockValidator.ValidateBlock(block)
	if err != nil {
		return err
	}

	err = c.store.PutBlock(block)
	if err != nil {
		return err
	}

	currentTip, err := c.store.Tip()
	if err != nil {
		return err
	}
	candidate := &externalapi.TipInfo{
		Hash:   consensushashing.BlockHash(block),
		Height: block.Header.Height,
	}
	if !c.forkChoice.ShouldAdopt(currentTip, candidate) {
		log.Debugf("Stored block %s at height %d without adopting it as tip",
			candidate.Hash, candidate.Height)
		return nil
	}

	err = c.store.SetTip(candidate)
	if err != nil {
		return err
	}
	err = c.registerArtefacts(block)
	if err != nil {
		return err
	}

	log.Infof("New tip %s at height %d", candidate.Hash, candidate.Height)
	return nil
}

// registerArtefacts records the metadata of every RegisterModel
// transaction in an adopted block. Base validity has already ruled out
// duplicates, both within the block and against the registry.
func (c *consensus) registerArtefacts(block *externalapi.DomainBlock) error {
	for _, tx := range block.Transactions {
		if tx.Type != externalapi.TransactionTypeRegisterModel {
			continue
		}
		payload := tx.RegisterModel
		err := c.store.PutArtefact(&externalapi.ArtefactMetadata{
			ArtefactID:   payload.ArtefactID,
			Owner:        payload.Owner,
			Evidence:     payload.Evidence,
			WmProfile:    payload.WmProfile,
			RegisteredAt: block.Header.Height,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *consensus) Tip() (*externalapi.TipInfo, error) {
	return c.store.Tip()
}

func (c *consensus) GetBlock(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {
	return c.store.GetBlock(blockHash)
}
