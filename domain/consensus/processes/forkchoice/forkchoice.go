package forkchoice

import (
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

// longestChain adopts the candidate with the strictly greatest height.
// Ties keep the current tip, so the first block seen at a height wins.
type longestChain struct{}

// New creates the longest-chain fork-choice rule.
func New() model.ForkChoice {
	return &longestChain{}
}

func (fc *longestChain) ShouldAdopt(currentTip *externalapi.TipInfo, candidate *externalapi.TipInfo) bool {
	if currentTip == nil {
		return true
	}
	return candidate.Height > currentTip.Height
}
