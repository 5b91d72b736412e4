package externalapi

// EvidenceRef names a watermarking scheme and commits to its off-chain
// verification material. The evidence payload itself (keys, detector
// parameters) is stored off-chain and addressed by its hash.
type EvidenceRef struct {
	SchemeID     string
	EvidenceHash *DomainHash
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &EvidenceRef{"", &DomainHash{}}

// Equal returns whether evidence equals to other
func (evidence *EvidenceRef) Equal(other *EvidenceRef) bool {
	if evidence == nil || other == nil {
		return evidence == other
	}

	if evidence.SchemeID != other.SchemeID {
		return false
	}

	return evidence.EvidenceHash.Equal(other.EvidenceHash)
}

// Clone returns a clone of EvidenceRef
func (evidence *EvidenceRef) Clone() *EvidenceRef {
	return &EvidenceRef{
		SchemeID:     evidence.SchemeID,
		EvidenceHash: evidence.EvidenceHash,
	}
}

// WmProfile holds the watermark-verification thresholds chosen by a
// registrant. Two registrations of the same artefact with different
// profiles are distinct verification requests, so the profile is part
// of the verification-cache key.
type WmProfile struct {
	TauInput      float64
	TauFeat       float64
	LogitBandLow  float64
	LogitBandHigh float64
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &WmProfile{0, 0, 0, 0}

// Equal returns whether profile equals to other
func (profile *WmProfile) Equal(other *WmProfile) bool {
	if profile == nil || other == nil {
		return profile == other
	}

	return profile.TauInput == other.TauInput &&
		profile.TauFeat == other.TauFeat &&
		profile.LogitBandLow == other.LogitBandLow &&
		profile.LogitBandHigh == other.LogitBandHigh
}

// Clone returns a clone of WmProfile
func (profile *WmProfile) Clone() *WmProfile {
	profileClone := *profile
	return &profileClone
}

// ArtefactMetadata is the on-chain record created the first time a
// RegisterModel transaction for a given artefact is accepted into a block.
// Records are never deleted; a later registration of the same artefact ID
// is a duplicate and gets rejected.
type ArtefactMetadata struct {
	ArtefactID   *ArtefactID
	Owner        *AccountID
	Evidence     *EvidenceRef
	WmProfile    *WmProfile
	RegisteredAt uint64
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &ArtefactMetadata{&ArtefactID{}, &AccountID{}, &EvidenceRef{}, &WmProfile{}, 0}

// Equal returns whether metadata equals to other
func (metadata *ArtefactMetadata) Equal(other *ArtefactMetadata) bool {
	if metadata == nil || other == nil {
		return metadata == other
	}

	if !metadata.ArtefactID.Equal(other.ArtefactID) {
		return false
	}

	if !metadata.Owner.Equal(other.Owner) {
		return false
	}

	if !metadata.Evidence.Equal(other.Evidence) {
		return false
	}

	if !metadata.WmProfile.Equal(other.WmProfile) {
		return false
	}

	return metadata.RegisteredAt == other.RegisteredAt
}

// Clone returns a clone of ArtefactMetadata
func (metadata *ArtefactMetadata) Clone() *ArtefactMetadata {
	return &ArtefactMetadata{
		ArtefactID:   metadata.ArtefactID.Clone(),
		Owner:        metadata.Owner.Clone(),
		Evidence:     metadata.Evidence.Clone(),
		WmProfile:    metadata.WmProfile.Clone(),
		RegisteredAt: metadata.RegisteredAt,
	}
}
