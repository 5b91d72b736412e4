package blockstore

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensushashing"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensusserialization"
	"github.com/wmchain/wmchaind/infrastructure/db/database"
)

// The durable store organizes its state into independent namespaces so
// that blocks, the artefact registry, and the verification cache can each
// be iterated or pruned by operational tooling without touching the others.
var (
	blocksBucket    = database.MakeBucket([]byte("blocks"))
	artefactsBucket = database.MakeBucket([]byte("artefacts"))
	verdictsBucket  = database.MakeBucket([]byte("mlverdicts"))
	metaBucket      = database.MakeBucket([]byte("meta"))

	tipKey = metaBucket.Key([]byte("tip"))
)

// blockStore is a model.BlockStore backed by a database.Database. The
// mutex guards the tip pointer so a reader never observes a tip that is
// mid-update.
type blockStore struct {
	db database.Database

	tipMutex sync.RWMutex
}

// New creates a new durable BlockStore over the given database.
func New(db database.Database) model.BlockStore {
	return &blockStore{db: db}
}

func blockKey(blockHash *externalapi.DomainHash) *database.Key {
	return blocksBucket.Key(blockHash.ByteSlice())
}

func artefactKey(artefactID *externalapi.ArtefactID) *database.Key {
	return artefactsBucket.Key(artefactID.ByteSlice())
}

func verdictKey(key *externalapi.VerificationKey) *database.Key {
	return verdictsBucket.Key(consensushashing.VerificationKeyHash(key).ByteSlice())
}

func (bs *blockStore) PutBlock(block *externalapi.DomainBlock) error {
	blockHash := consensushashing.BlockHash(block)

	exists, err := bs.db.Has(blockKey(blockHash))
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(model.ErrDuplicateBlock, "block %s already exists", blockHash)
	}

	blockBytes, err := consensusserialization.SerializeBlock(block)
	if err != nil {
		return err
	}
	return bs.db.Put(blockKey(blockHash), blockBytes)
}

func (bs *blockStore) GetBlock(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {
	blockBytes, err := bs.db.Get(blockKey(blockHash))
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, errors.Wrapf(model.ErrBlockNotFound, "block %s is not in the store", blockHash)
		}
		return nil, err
	}
	return consensusserialization.DeserializeBlock(blockBytes)
}

func (bs *blockStore) HasBlock(blockHash *externalapi.DomainHash) (bool, error) {
	return bs.db.Has(blockKey(blockHash))
}

func (bs *blockStore) Tip() (*externalapi.TipInfo, error) {
	bs.tipMutex.RLock()
	defer bs.tipMutex.RUnlock()

	tipBytes, err := bs.db.Get(tipKey)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return consensusserialization.DeserializeTipInfo(tipBytes)
}

func (bs *blockStore) SetTip(tip *externalapi.TipInfo) error {
	bs.tipMutex.Lock()
	defer bs.tipMutex.Unlock()

	exists, err := bs.db.Has(blockKey(tip.Hash))
	if err != nil {
		return err
	}
	if !exists {
		return errors.Errorf("cannot set tip to %s: the block is not in the store", tip.Hash)
	}

	tipBytes, err := consensusserialization.SerializeTipInfo(tip)
	if err != nil {
		return err
	}
	return bs.db.Put(tipKey, tipBytes)
}

func (bs *blockStore) GetVerdict(key *externalapi.VerificationKey) (*externalapi.MLVerdict, bool, error) {
	verdictBytes, err := bs.db.Get(verdictKey(key))
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	verdict, err := consensusserialization.DeserializeVerdict(verdictBytes)
	if err != nil {
		return nil, false, err
	}
	return verdict, true, nil
}

func (bs *blockStore) PutVerdict(key *externalapi.VerificationKey, verdict *externalapi.MLVerdict) error {
	verdictBytes, err := consensusserialization.SerializeVerdict(verdict)
	if err != nil {
		return err
	}
	return bs.db.Put(verdictKey(key), verdictBytes)
}

func (bs *blockStore) GetArtefact(artefactID *externalapi.ArtefactID) (*externalapi.ArtefactMetadata, error) {
	metadataBytes, err := bs.db.Get(artefactKey(artefactID))
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, errors.Wrapf(model.ErrArtefactNotFound, "artefact %s is not registered", artefactID)
		}
		return nil, err
	}
	return consensusserialization.DeserializeArtefactMetadata(metadataBytes)
}

func (bs *blockStore) HasArtefact(artefactID *externalapi.ArtefactID) (bool, error) {
	return bs.db.Has(artefactKey(artefactID))
}

func (bs *blockStore) PutArtefact(metadata *externalapi.ArtefactMetadata) error {
	metadataBytes, err := consensusserialization.SerializeArtefactMetadata(metadata)
	if err != nil {
		return err
	}
	return bs.db.Put(artefactKey(metadata.ArtefactID), metadataBytes)
}
