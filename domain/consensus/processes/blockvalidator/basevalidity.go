package blockvalidator

import (
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/ruleerrors"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensushashing"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensusserialization"
)

// baseValidity enforces the cheap, deterministic block invariants: caps on
// size and transaction count, the transaction-root commitment, header
// consistency against the current tip, and artefact-ID uniqueness both
// within the block and against the on-chain registry. No check here
// performs network I/O, and validation stops at the first failing rule.
type baseValidity struct {
	store model.BlockStore

	maxBlockSize         uint64
	maxBlockTransactions uint64
	allowEmptyBlocks     bool
}

// NewBaseValidity creates the structural validation stage.
func NewBaseValidity(store model.BlockStore, maxBlockSize uint64, maxBlockTransactions uint64,
	allowEmptyBlocks bool) model.BlockValidator {

	return &baseValidity{
		store:                store,
		maxBlockSize:         maxBlockSize,
		maxBlockTransactions: maxBlockTransactions,
		allowEmptyBlocks:     allowEmptyBlocks,
	}
}

func (v *baseValidity) ValidateBlock(block *externalapi.DomainBlock) error {
	err := v.checkTransactionCount(block)
	if err != nil {
		return err
	}

	err = v.checkBlockSize(block)
	if err != nil {
		return err
	}

	err = v.checkTransactionRoot(block)
	if err != nil {
		return err
	}

	err = v.checkHeaderAgainstTip(block)
	if err != nil {
		return err
	}

	err = v.checkDuplicateArtefactsInBlock(block)
	if err != nil {
		return err
	}

	return v.checkDuplicateRegistrations(block)
}

func (v *baseValidity) checkTransactionCount(block *externalapi.DomainBlock) error {
	transactionCount := uint64(len(block.Transactions))
	if transactionCount > v.maxBlockTransactions {
		return ruleerrors.Errorf(ruleerrors.ErrTooManyTransactions,
			"block has %d transactions, while the maximum allowed is %d",
			transactionCount, v.maxBlockTransactions)
	}
	if transactionCount == 0 && !v.allowEmptyBlocks {
		return ruleerrors.Errorf(ruleerrors.ErrEmptyBlock, "empty blocks are not allowed")
	}
	return nil
}

func (v *baseValidity) checkBlockSize(block *externalapi.DomainBlock) error {
	blockSize, err := consensusserialization.BlockSize(block)
	if err != nil {
		return err
	}
	if blockSize > v.maxBlockSize {
		return ruleerrors.Errorf(ruleerrors.ErrBlockSize,
			"block size is %d bytes, while the maximum allowed is %d",
			blockSize, v.maxBlockSize)
	}
	return nil
}

func (v *baseValidity) checkTransactionRoot(block *externalapi.DomainBlock) error {
	expectedRoot := consensushashing.TransactionRoot(block.Transactions)
	if !block.Header.TransactionRoot.Equal(expectedRoot) {
		return ruleerrors.Errorf(ruleerrors.ErrBadTransactionRoot,
			"block transaction root is %s, while the transactions commit to %s",
			block.Header.TransactionRoot, expectedRoot)
	}
	return nil
}

func (v *baseValidity) checkHeaderAgainstTip(block *externalapi.DomainBlock) error {
	tip, err := v.store.Tip()
	if err != nil {
		return err
	}

	if tip == nil {
		// Genesis: height 0 with a zero parent hash.
		if block.Header.Height != 0 {
			return ruleerrors.Errorf(ruleerrors.ErrBadHeight,
				"the first block must have height 0, got %d", block.Header.Height)
		}
		if !block.Header.ParentHash.Equal(externalapi.NewZeroHash()) {
			return ruleerrors.Errorf(ruleerrors.ErrBadParent,
				"the first block must have a zero parent hash, got %s", block.Header.ParentHash)
		}
		return nil
	}

	if block.Header.Height != tip.Height+1 {
		return ruleerrors.Errorf(ruleerrors.ErrBadHeight,
			"block height is %d, while the tip height is %d", block.Header.Height, tip.Height)
	}

	if !block.Header.ParentHash.Equal(tip.Hash) {
		return ruleerrors.Errorf(ruleerrors.ErrBadParent,
			"block parent is %s, while the tip is %s", block.Header.ParentHash, tip.Hash)
	}

	parent, err := v.store.GetBlock(tip.Hash)
	if err != nil {
		return err
	}
	if block.Header.Timestamp < parent.Header.Timestamp {
		return ruleerrors.Errorf(ruleerrors.ErrTimeTooOld,
			"block timestamp %d is before the parent timestamp %d",
			block.Header.Timestamp, parent.Header.Timestamp)
	}
	return nil
}

func (v *baseValidity) checkDuplicateArtefactsInBlock(block *externalapi.DomainBlock) error {
	seen := make(map[externalapi.ArtefactID]struct{})
	for _, tx := range block.Transactions {
		if tx.Type != externalapi.TransactionTypeRegisterModel {
			continue
		}
		artefactID := tx.RegisterModel.ArtefactID
		if _, exists := seen[*artefactID]; exists {
			return ruleerrors.Errorf(ruleerrors.ErrDuplicateArtefactInBlock,
				"artefact %s is registered more than once in the block", artefactID)
		}
		seen[*artefactID] = struct{}{}
	}
	return nil
}

func (v *baseValidity) checkDuplicateRegistrations(block *externalapi.DomainBlock) error {
	for _, tx := range block.Transactions {
		if tx.Type != externalapi.TransactionTypeRegisterModel {
			continue
		}
		artefactID := tx.RegisterModel.ArtefactID
		exists, err := v.store.HasArtefact(artefactID)
		if err != nil {
			return err
		}
		if exists {
			return ruleerrors.Errorf(ruleerrors.ErrDuplicateArtefactRegistration,
				"artefact %s is already registered on-chain", artefactID)
		}
	}
	return nil
}
