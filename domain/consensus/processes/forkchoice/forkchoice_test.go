package forkchoice

import (
	"testing"

	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

func tipForTest(lastByte byte, height uint64) *externalapi.TipInfo {
	var hashBytes [externalapi.DomainHashSize]byte
	hashBytes[externalapi.DomainHashSize-1] = lastByte
	return &externalapi.TipInfo{
		Hash:   externalapi.NewDomainHashFromByteArray(&hashBytes),
		Height: height,
	}
}

func TestShouldAdopt(t *testing.T) {
	forkChoice := New()

	tests := []struct {
		name        string
		currentTip  *externalapi.TipInfo
		candidate   *externalapi.TipInfo
		shouldAdopt bool
	}{
		{
			name:        "no tip adopts any candidate",
			currentTip:  nil,
			candidate:   tipForTest(0x01, 0),
			shouldAdopt: true,
		},
		{
			name:        "strictly higher candidate is adopted",
			currentTip:  tipForTest(0x01, 5),
			candidate:   tipForTest(0x02, 6),
			shouldAdopt: true,
		},
		{
			name:        "equal height keeps the current tip",
			currentTip:  tipForTest(0x01, 5),
			candidate:   tipForTest(0x02, 5),
			shouldAdopt: false,
		},
		{
			name:        "lower candidate is rejected",
			currentTip:  tipForTest(0x01, 5),
			candidate:   tipForTest(0x02, 4),
			shouldAdopt: false,
		},
	}

	for _, test := range tests {
		got := forkChoice.ShouldAdopt(test.currentTip, test.candidate)
		if got != test.shouldAdopt {
			t.Errorf("%s: ShouldAdopt returned %t, expected %t", test.name, got, test.shouldAdopt)
		}
	}
}
