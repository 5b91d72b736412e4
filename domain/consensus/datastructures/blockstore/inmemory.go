package blockstore

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensushashing"
)

// inMemoryBlockStore is a volatile model.BlockStore. All state is lost on
// restart; it exists for tests and for dev runs that don't need a data
// directory.
type inMemoryBlockStore struct {
	mutex sync.RWMutex

	blocks    map[externalapi.DomainHash]*externalapi.DomainBlock
	artefacts map[externalapi.ArtefactID]*externalapi.ArtefactMetadata
	verdicts  map[externalapi.DomainHash]*externalapi.MLVerdict
	tip       *externalapi.TipInfo
}

// NewInMemory creates a new volatile BlockStore.
func NewInMemory() model.BlockStore {
	return &inMemoryBlockStore{
		blocks:    make(map[externalapi.DomainHash]*externalapi.DomainBlock),
		artefacts: make(map[externalapi.ArtefactID]*externalapi.ArtefactMetadata),
		verdicts:  make(map[externalapi.DomainHash]*externalapi.MLVerdict),
	}
}

func (bs *inMemoryBlockStore) PutBlock(block *externalapi.DomainBlock) error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	blockHash := consensushashing.BlockHash(block)
	if _, exists := bs.blocks[*blockHash]; exists {
		return errors.Wrapf(model.ErrDuplicateBlock, "block %s already exists", blockHash)
	}

	bs.blocks[*blockHash] = block.Clone()
	return nil
}

func (bs *inMemoryBlockStore) GetBlock(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	block, exists := bs.blocks[*blockHash]
	if !exists {
		return nil, errors.Wrapf(model.ErrBlockNotFound, "block %s is not in the store", blockHash)
	}
	return block.Clone(), nil
}

func (bs *inMemoryBlockStore) HasBlock(blockHash *externalapi.DomainHash) (bool, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	_, exists := bs.blocks[*blockHash]
	return exists, nil
}

func (bs *inMemoryBlockStore) Tip() (*externalapi.TipInfo, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if bs.tip == nil {
		return nil, nil
	}
	return bs.tip.Clone(), nil
}

func (bs *inMemoryBlockStore) SetTip(tip *externalapi.TipInfo) error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if _, exists := bs.blocks[*tip.Hash]; !exists {
		return errors.Errorf("cannot set tip to %s: the block is not in the store", tip.Hash)
	}

	bs.tip = tip.Clone()
	return nil
}

func (bs *inMemoryBlockStore) GetVerdict(key *externalapi.VerificationKey) (*externalapi.MLVerdict, bool, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	verdict, exists := bs.verdicts[*consensushashing.VerificationKeyHash(key)]
	if !exists {
		return nil, false, nil
	}
	return verdict.Clone(), true, nil
}

func (bs *inMemoryBlockStore) PutVerdict(key *externalapi.VerificationKey, verdict *externalapi.MLVerdict) error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	bs.verdicts[*consensushashing.VerificationKeyHash(key)] = verdict.Clone()
	return nil
}

func (bs *inMemoryBlockStore) GetArtefact(artefactID *externalapi.ArtefactID) (*externalapi.ArtefactMetadata, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	metadata, exists := bs.artefacts[*artefactID]
	if !exists {
		return nil, errors.Wrapf(model.ErrArtefactNotFound, "artefact %s is not registered", artefactID)
	}
	return metadata.Clone(), nil
}

func (bs *inMemoryBlockStore) HasArtefact(artefactID *externalapi.ArtefactID) (bool, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	_, exists := bs.artefacts[*artefactID]
	return exists, nil
}

func (bs *inMemoryBlockStore) PutArtefact(metadata *externalapi.ArtefactMetadata) error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	bs.artefacts[*metadata.ArtefactID] = metadata.Clone()
	return nil
}
