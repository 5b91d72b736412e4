package externalapi

// MLVerdict is the result of one watermark-verification call. The
// verifier is assumed deterministic for identical inputs, so a verdict
// may be cached and reused across proposals.
type MLVerdict struct {
	OK         bool
	TriggerAcc float64
	FeatDist   float64
	LogitStat  float64
	LatencyMS  uint64
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &MLVerdict{false, 0, 0, 0, 0}

// Equal returns whether verdict equals to other
func (verdict *MLVerdict) Equal(other *MLVerdict) bool {
	if verdict == nil || other == nil {
		return verdict == other
	}

	return verdict.OK == other.OK &&
		verdict.TriggerAcc == other.TriggerAcc &&
		verdict.FeatDist == other.FeatDist &&
		verdict.LogitStat == other.LogitStat &&
		verdict.LatencyMS == other.LatencyMS
}

// Clone returns a clone of MLVerdict
func (verdict *MLVerdict) Clone() *MLVerdict {
	verdictClone := *verdict
	return &verdictClone
}

// VerificationKey is the full input of one watermark-verification
// request. Identical keys are guaranteed identical verdicts, which is
// what makes the verification cache sound.
type VerificationKey struct {
	ArtefactID   *ArtefactID
	SchemeID     string
	EvidenceHash *DomainHash
	WmProfile    *WmProfile
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &VerificationKey{&ArtefactID{}, "", &DomainHash{}, &WmProfile{}}

// Equal returns whether key equals to other
func (key *VerificationKey) Equal(other *VerificationKey) bool {
	if key == nil || other == nil {
		return key == other
	}

	if !key.ArtefactID.Equal(other.ArtefactID) {
		return false
	}

	if key.SchemeID != other.SchemeID {
		return false
	}

	if !key.EvidenceHash.Equal(other.EvidenceHash) {
		return false
	}

	return key.WmProfile.Equal(other.WmProfile)
}

// Clone returns a clone of VerificationKey
func (key *VerificationKey) Clone() *VerificationKey {
	return &VerificationKey{
		ArtefactID:   key.ArtefactID.Clone(),
		SchemeID:     key.SchemeID,
		EvidenceHash: key.EvidenceHash,
		WmProfile:    key.WmProfile.Clone(),
	}
}

// VerificationKeyFromRegistration builds the verification key of a
// RegisterModel payload.
func VerificationKeyFromRegistration(payload *RegisterModelPayload) *VerificationKey {
	return &VerificationKey{
		ArtefactID:   payload.ArtefactID,
		SchemeID:     payload.Evidence.SchemeID,
		EvidenceHash: payload.Evidence.EvidenceHash,
		WmProfile:    payload.WmProfile,
	}
}
