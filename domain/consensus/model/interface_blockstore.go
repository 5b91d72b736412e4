package model

import (
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

// BlockStore is the persistence boundary of the consensus engine. It owns
// the persisted blocks, the canonical tip pointer, the artefact registry,
// and the verification cache.
//
// SetTip must be atomic with respect to concurrent readers: a reader never
// observes a tip pointing to a block that is not yet stored.
type BlockStore interface {
	// PutBlock persists a block keyed by its hash. Putting a hash that
	// already exists fails with ErrDuplicateBlock and leaves the stored
	// data untouched.
	PutBlock(block *externalapi.DomainBlock) error

	// GetBlock returns the block with the given hash, or an error wrapping
	// ErrBlockNotFound if no such block is stored.
	GetBlock(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error)

	// HasBlock returns whether a block with the given hash is stored.
	HasBlock(blockHash *externalapi.DomainHash) (bool, error)

	// Tip returns the current canonical chain head, or nil before genesis.
	Tip() (*externalapi.TipInfo, error)

	// SetTip updates the canonical pointer. The referenced block must
	// already be stored.
	SetTip(tip *externalapi.TipInfo) error

	// GetVerdict returns the cached verdict for the given verification
	// key. The second return value reports whether a verdict was found.
	GetVerdict(key *externalapi.VerificationKey) (*externalapi.MLVerdict, bool, error)

	// PutVerdict caches a verdict under the given verification key.
	// Verdicts are content-keyed, so overwriting with an identical key is
	// idempotent.
	PutVerdict(key *externalapi.VerificationKey, verdict *externalapi.MLVerdict) error

	// GetArtefact returns the registry record for the given artefact ID,
	// or an error wrapping ErrArtefactNotFound if none exists.
	GetArtefact(artefactID *externalapi.ArtefactID) (*externalapi.ArtefactMetadata, error)

	// HasArtefact returns whether the given artefact ID is registered.
	HasArtefact(artefactID *externalapi.ArtefactID) (bool, error)

	// PutArtefact records artefact metadata in the registry.
	PutArtefact(metadata *externalapi.ArtefactMetadata) error
}
