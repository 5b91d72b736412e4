package consensusserialization

import (
	"bytes"

	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/serialization"
)

// SerializeTipInfo returns the canonical encoding of tip.
func SerializeTipInfo(tip *externalapi.TipInfo) ([]byte, error) {
	var buffer bytes.Buffer
	err := serialization.WriteElements(&buffer, tip.Hash, tip.Height)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DeserializeTipInfo deserializes a canonically encoded tip pointer.
func DeserializeTipInfo(tipBytes []byte) (*externalapi.TipInfo, error) {
	reader := bytes.NewReader(tipBytes)

	hash, err := serialization.ReadDomainHash(reader)
	if err != nil {
		return nil, err
	}

	tip := &externalapi.TipInfo{Hash: hash}
	err = serialization.ReadElement(reader, &tip.Height)
	if err != nil {
		return nil, err
	}
	return tip, nil
}
