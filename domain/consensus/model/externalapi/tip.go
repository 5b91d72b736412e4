package externalapi

// TipInfo is the (hash, height) pair of the current canonical chain head.
type TipInfo struct {
	Hash   *DomainHash
	Height uint64
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &TipInfo{&DomainHash{}, 0}

// Equal returns whether tip equals to other
func (tip *TipInfo) Equal(other *TipInfo) bool {
	if tip == nil || other == nil {
		return tip == other
	}

	return tip.Hash.Equal(other.Hash) && tip.Height == other.Height
}

// Clone returns a clone of TipInfo
func (tip *TipInfo) Clone() *TipInfo {
	return &TipInfo{
		Hash:   tip.Hash,
		Height: tip.Height,
	}
}
