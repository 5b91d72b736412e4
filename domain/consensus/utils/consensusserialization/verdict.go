package consensusserialization

import (
	"bytes"
	"io"

	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/serialization"
)

// WriteVerdict writes the canonical encoding of verdict to w.
func WriteVerdict(w io.Writer, verdict *externalapi.MLVerdict) error {
	return serialization.WriteElements(w,
		verdict.OK, verdict.TriggerAcc, verdict.FeatDist, verdict.LogitStat, verdict.LatencyMS)
}

// ReadVerdict reads a canonically encoded verdict from r.
func ReadVerdict(r io.Reader) (*externalapi.MLVerdict, error) {
	verdict := &externalapi.MLVerdict{}
	err := serialization.ReadElements(r,
		&verdict.OK, &verdict.TriggerAcc, &verdict.FeatDist, &verdict.LogitStat, &verdict.LatencyMS)
	if err != nil {
		return nil, err
	}
	return verdict, nil
}

// SerializeVerdict returns the canonical encoding of verdict.
func SerializeVerdict(verdict *externalapi.MLVerdict) ([]byte, error) {
	var buffer bytes.Buffer
	err := WriteVerdict(&buffer, verdict)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DeserializeVerdict deserializes a canonically encoded verdict.
func DeserializeVerdict(verdictBytes []byte) (*externalapi.MLVerdict, error) {
	return ReadVerdict(bytes.NewReader(verdictBytes))
}

// WriteVerificationKey writes the canonical encoding of key to w. The
// verification cache stores verdicts under the hash of this encoding.
func WriteVerificationKey(w io.Writer, key *externalapi.VerificationKey) error {
	err := serialization.WriteElement(w, key.ArtefactID)
	if err != nil {
		return err
	}

	err = serialization.WriteVarString(w, key.SchemeID)
	if err != nil {
		return err
	}

	err = serialization.WriteElement(w, key.EvidenceHash)
	if err != nil {
		return err
	}

	return writeWmProfile(w, key.WmProfile)
}

// SerializeVerificationKey returns the canonical encoding of key.
func SerializeVerificationKey(key *externalapi.VerificationKey) ([]byte, error) {
	var buffer bytes.Buffer
	err := WriteVerificationKey(&buffer, key)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
