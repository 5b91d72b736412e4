package model

import (
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

// ForkChoice decides whether a newly accepted block displaces the current
// canonical tip. Implementations must be pure and deterministic for any
// two competing candidates.
type ForkChoice interface {
	// ShouldAdopt returns whether candidate becomes the new tip given the
	// current one. currentTip is nil before genesis.
	ShouldAdopt(currentTip *externalapi.TipInfo, candidate *externalapi.TipInfo) bool
}
