package model

import "github.com/pkg/errors"

// ErrBlockNotFound is returned by BlockStore.GetBlock when no block with
// the requested hash is stored.
var ErrBlockNotFound = errors.New("block not found")

// ErrArtefactNotFound is returned by BlockStore.GetArtefact when the
// requested artefact ID is not registered.
var ErrArtefactNotFound = errors.New("artefact not found")

// ErrDuplicateBlock is returned by BlockStore.PutBlock when a block with
// the same hash is already stored.
var ErrDuplicateBlock = errors.New("duplicate block")
