package consensusserialization

import (
	"bytes"
	"io"

	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/serialization"
)

// WriteArtefactMetadata writes the canonical encoding of metadata to w.
func WriteArtefactMetadata(w io.Writer, metadata *externalapi.ArtefactMetadata) error {
	err := serialization.WriteElements(w, metadata.ArtefactID, metadata.Owner)
	if err != nil {
		return err
	}

	err = writeEvidenceRef(w, metadata.Evidence)
	if err != nil {
		return err
	}

	err = writeWmProfile(w, metadata.WmProfile)
	if err != nil {
		return err
	}

	return serialization.WriteElement(w, metadata.RegisteredAt)
}

// ReadArtefactMetadata reads canonically encoded artefact metadata from r.
func ReadArtefactMetadata(r io.Reader) (*externalapi.ArtefactMetadata, error) {
	artefactID, err := readArtefactID(r)
	if err != nil {
		return nil, err
	}

	owner, err := readAccountID(r)
	if err != nil {
		return nil, err
	}

	evidence, err := readEvidenceRef(r)
	if err != nil {
		return nil, err
	}

	wmProfile, err := readWmProfile(r)
	if err != nil {
		return nil, err
	}

	metadata := &externalapi.ArtefactMetadata{
		ArtefactID: artefactID,
		Owner:      owner,
		Evidence:   evidence,
		WmProfile:  wmProfile,
	}
	err = serialization.ReadElement(r, &metadata.RegisteredAt)
	if err != nil {
		return nil, err
	}
	return metadata, nil
}

// SerializeArtefactMetadata returns the canonical encoding of metadata.
func SerializeArtefactMetadata(metadata *externalapi.ArtefactMetadata) ([]byte, error) {
	var buffer bytes.Buffer
	err := WriteArtefactMetadata(&buffer, metadata)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DeserializeArtefactMetadata deserializes canonically encoded artefact metadata.
func DeserializeArtefactMetadata(metadataBytes []byte) (*externalapi.ArtefactMetadata, error) {
	return ReadArtefactMetadata(bytes.NewReader(metadataBytes))
}
