package model

import (
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

// BlockValidator is a composable predicate over a candidate block. An
// implementation returns nil for an acceptable block and a typed error
// naming the violated rule otherwise.
type BlockValidator interface {
	ValidateBlock(block *externalapi.DomainBlock) error
}
