package blockvalidator

import (
	"testing"

	"github.com/wmchain/wmchaind/domain/consensus/datastructures/blockstore"
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/ruleerrors"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensushashing"
)

const (
	testMaxBlockSize         = 1 << 20
	testMaxBlockTransactions = 8
)

func newBaseValidityForTest(store model.BlockStore) model.BlockValidator {
	return NewBaseValidity(store, testMaxBlockSize, testMaxBlockTransactions, false)
}

// storeWithTip stores a genesis block and points the tip at it, so tests
// can validate children against a populated chain.
func storeWithTip(t *testing.T) (model.BlockStore, *externalapi.DomainBlock) {
	store := blockstore.NewInMemory()
	genesis := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{transferForTest()})

	err := store.PutBlock(genesis)
	if err != nil {
		t.Fatalf("PutBlock unexpectedly failed: %s", err)
	}
	err = store.SetTip(&externalapi.TipInfo{
		Hash:   consensushashing.BlockHash(genesis),
		Height: genesis.Header.Height,
	})
	if err != nil {
		t.Fatalf("SetTip unexpectedly failed: %s", err)
	}
	return store, genesis
}

func checkRuleError(t *testing.T, err error, expectedCode ruleerrors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("ValidateBlock unexpectedly succeeded, expected %s", expectedCode)
	}
	ruleErr, ok := ruleerrors.AsRuleError(err)
	if !ok {
		t.Fatalf("ValidateBlock returned %s, expected a rule error with code %s", err, expectedCode)
	}
	if ruleErr.ErrorCode != expectedCode {
		t.Fatalf("ValidateBlock returned code %s, expected %s", ruleErr.ErrorCode, expectedCode)
	}
}

func TestBaseValidityGenesis(t *testing.T) {
	store := blockstore.NewInMemory()
	validator := newBaseValidityForTest(store)

	genesis := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{transferForTest()})
	err := validator.ValidateBlock(genesis)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly failed on a valid genesis: %s", err)
	}

	wrongHeight := blockForTest(externalapi.NewZeroHash(), 1, 1000,
		[]*externalapi.DomainTransaction{transferForTest()})
	checkRuleError(t, validator.ValidateBlock(wrongHeight), ruleerrors.ErrBadHeight)

	wrongParent := blockForTest(hashForTest(0x01), 0, 1000,
		[]*externalapi.DomainTransaction{transferForTest()})
	checkRuleError(t, validator.ValidateBlock(wrongParent), ruleerrors.ErrBadParent)
}

func TestBaseValidityAgainstTip(t *testing.T) {
	store, genesis := storeWithTip(t)
	validator := newBaseValidityForTest(store)
	genesisHash := consensushashing.BlockHash(genesis)

	child := blockForTest(genesisHash, 1, 1005,
		[]*externalapi.DomainTransaction{registrationForTest(0x01)})
	err := validator.ValidateBlock(child)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly failed on a valid child: %s", err)
	}

	wrongHeight := blockForTest(genesisHash, 3, 1005,
		[]*externalapi.DomainTransaction{registrationForTest(0x01)})
	checkRuleError(t, validator.ValidateBlock(wrongHeight), ruleerrors.ErrBadHeight)

	wrongParent := blockForTest(hashForTest(0xee), 1, 1005,
		[]*externalapi.DomainTransaction{registrationForTest(0x01)})
	checkRuleError(t, validator.ValidateBlock(wrongParent), ruleerrors.ErrBadParent)

	tooOld := blockForTest(genesisHash, 1, genesis.Header.Timestamp-1,
		[]*externalapi.DomainTransaction{registrationForTest(0x01)})
	checkRuleError(t, validator.ValidateBlock(tooOld), ruleerrors.ErrTimeTooOld)

	sameTimestamp := blockForTest(genesisHash, 1, genesis.Header.Timestamp,
		[]*externalapi.DomainTransaction{registrationForTest(0x01)})
	err = validator.ValidateBlock(sameTimestamp)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly rejected a block sharing the parent timestamp: %s", err)
	}
}

func TestBaseValidityCaps(t *testing.T) {
	store, genesis := storeWithTip(t)
	genesisHash := consensushashing.BlockHash(genesis)

	validator := newBaseValidityForTest(store)

	transactions := make([]*externalapi.DomainTransaction, testMaxBlockTransactions+1)
	for i := range transactions {
		transactions[i] = registrationForTest(byte(i + 1))
	}
	tooManyTransactions := blockForTest(genesisHash, 1, 1005, transactions)
	checkRuleError(t, validator.ValidateBlock(tooManyTransactions), ruleerrors.ErrTooManyTransactions)

	empty := blockForTest(genesisHash, 1, 1005, nil)
	checkRuleError(t, validator.ValidateBlock(empty), ruleerrors.ErrEmptyBlock)

	allowEmpty := NewBaseValidity(store, testMaxBlockSize, testMaxBlockTransactions, true)
	err := allowEmpty.ValidateBlock(empty)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly rejected an empty block with "+
			"empty blocks allowed: %s", err)
	}

	tinyMaxSize := NewBaseValidity(store, 16, testMaxBlockTransactions, false)
	oversized := blockForTest(genesisHash, 1, 1005,
		[]*externalapi.DomainTransaction{registrationForTest(0x01)})
	checkRuleError(t, tinyMaxSize.ValidateBlock(oversized), ruleerrors.ErrBlockSize)
}

func TestBaseValidityTransactionRoot(t *testing.T) {
	store, genesis := storeWithTip(t)
	validator := newBaseValidityForTest(store)

	block := blockForTest(consensushashing.BlockHash(genesis), 1, 1005,
		[]*externalapi.DomainTransaction{registrationForTest(0x01)})
	block.Header.TransactionRoot = hashForTest(0xff)
	checkRuleError(t, validator.ValidateBlock(block), ruleerrors.ErrBadTransactionRoot)
}

func TestBaseValidityDuplicateArtefacts(t *testing.T) {
	store, genesis := storeWithTip(t)
	validator := newBaseValidityForTest(store)
	genesisHash := consensushashing.BlockHash(genesis)

	first := registrationForTest(0x01)
	duplicateInBlock := blockForTest(genesisHash, 1, 1005,
		[]*externalapi.DomainTransaction{first, registrationForTest(0x01)})
	checkRuleError(t, validator.ValidateBlock(duplicateInBlock), ruleerrors.ErrDuplicateArtefactInBlock)

	err := store.PutArtefact(&externalapi.ArtefactMetadata{
		ArtefactID:   first.RegisterModel.ArtefactID,
		Owner:        first.RegisterModel.Owner,
		Evidence:     first.RegisterModel.Evidence,
		WmProfile:    first.RegisterModel.WmProfile,
		RegisteredAt: 1,
	})
	if err != nil {
		t.Fatalf("PutArtefact unexpectedly failed: %s", err)
	}
	alreadyRegistered := blockForTest(genesisHash, 1, 1005,
		[]*externalapi.DomainTransaction{first})
	checkRuleError(t, validator.ValidateBlock(alreadyRegistered),
		ruleerrors.ErrDuplicateArtefactRegistration)
}
