package consensusserialization

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/serialization"
)

// WriteTransaction writes the canonical encoding of tx to w. The encoding
// opens with the type tag and the envelope fields, followed by the payload
// matching the tag.
func WriteTransaction(w io.Writer, tx *externalapi.DomainTransaction) error {
	err := serialization.WriteElements(w, uint8(tx.Type), tx.Fee, tx.Nonce)
	if err != nil {
		return err
	}

	err = serialization.WriteVarBytes(w, tx.Signature)
	if err != nil {
		return err
	}

	switch tx.Type {
	case externalapi.TransactionTypeRegisterModel:
		return writeRegisterModelPayload(w, tx.RegisterModel)
	case externalapi.TransactionTypeUseModel:
		return writeUseModelPayload(w, tx.UseModel)
	case externalapi.TransactionTypeTransfer:
		return writeTransferPayload(w, tx.Transfer)
	default:
		return errors.Errorf("unknown transaction type %d", tx.Type)
	}
}

// ReadTransaction reads a canonically encoded transaction from r.
func ReadTransaction(r io.Reader) (*externalapi.DomainTransaction, error) {
	var transactionType uint8
	tx := &externalapi.DomainTransaction{}
	err := serialization.ReadElements(r, &transactionType, &tx.Fee, &tx.Nonce)
	if err != nil {
		return nil, err
	}
	tx.Type = externalapi.TransactionType(transactionType)

	tx.Signature, err = serialization.ReadVarBytes(r)
	if err != nil {
		return nil, err
	}

	switch tx.Type {
	case externalapi.TransactionTypeRegisterModel:
		tx.RegisterModel, err = readRegisterModelPayload(r)
	case externalapi.TransactionTypeUseModel:
		tx.UseModel, err = readUseModelPayload(r)
	case externalapi.TransactionTypeTransfer:
		tx.Transfer, err = readTransferPayload(r)
	default:
		return nil, errors.Errorf("unknown transaction type %d", transactionType)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// SerializeTransaction returns the canonical encoding of tx.
func SerializeTransaction(tx *externalapi.DomainTransaction) ([]byte, error) {
	var buffer bytes.Buffer
	err := WriteTransaction(&buffer, tx)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DeserializeTransaction deserializes a canonically encoded transaction.
func DeserializeTransaction(transactionBytes []byte) (*externalapi.DomainTransaction, error) {
	return ReadTransaction(bytes.NewReader(transactionBytes))
}

// TransactionSize returns the size of tx's canonical encoding in bytes.
func TransactionSize(tx *externalapi.DomainTransaction) (uint64, error) {
	serialized, err := SerializeTransaction(tx)
	if err != nil {
		return 0, err
	}
	return uint64(len(serialized)), nil
}

func writeRegisterModelPayload(w io.Writer, payload *externalapi.RegisterModelPayload) error {
	err := serialization.WriteElements(w, payload.Owner, payload.ArtefactID)
	if err != nil {
		return err
	}

	err = writeEvidenceRef(w, payload.Evidence)
	if err != nil {
		return err
	}

	return writeWmProfile(w, payload.WmProfile)
}

func readRegisterModelPayload(r io.Reader) (*externalapi.RegisterModelPayload, error) {
	owner, err := readAccountID(r)
	if err != nil {
		return nil, err
	}

	artefactID, err := readArtefactID(r)
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

	return &externalapi.RegisterModelPayload{
		Owner:      owner,
		ArtefactID: artefactID,
		Evidence:   evidence,
		WmProfile:  wmProfile,
	}, nil
}

func writeUseModelPayload(w io.Writer, payload *externalapi.UseModelPayload) error {
	err := serialization.WriteElements(w, payload.Caller, payload.ArtefactID)
	if err != nil {
		return err
	}

	err = serialization.WriteVarString(w, payload.Task)
	if err != nil {
		return err
	}

	return serialization.WriteVarString(w, payload.Version)
}

func readUseModelPayload(r io.Reader) (*externalapi.UseModelPayload, error) {
	caller, err := readAccountID(r)
	if err != nil {
		return nil, err
	}

	artefactID, err := readArtefactID(r)
	if err != nil {
		return nil, err
	}

	task, err := serialization.ReadVarString(r)
	if err != nil {
		return nil, err
	}

	version, err := serialization.ReadVarString(r)
	if err != nil {
		return nil, err
	}

	return &externalapi.UseModelPayload{
		Caller:     caller,
		ArtefactID: artefactID,
		Task:       task,
		Version:    version,
	}, nil
}

func writeTransferPayload(w io.Writer, payload *externalapi.TransferPayload) error {
	return serialization.WriteElements(w, payload.From, payload.To, payload.Amount)
}

func readTransferPayload(r io.Reader) (*externalapi.TransferPayload, error) {
	from, err := readAccountID(r)
	if err != nil {
		return nil, err
	}

	to, err := readAccountID(r)
	if err != nil {
		return nil, err
	}

	payload := &externalapi.TransferPayload{From: from, To: to}
	err = serialization.ReadElement(r, &payload.Amount)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func writeEvidenceRef(w io.Writer, evidence *externalapi.EvidenceRef) error {
	err := serialization.WriteVarString(w, evidence.SchemeID)
	if err != nil {
		return err
	}
	return serialization.WriteElement(w, evidence.EvidenceHash)
}

func readEvidenceRef(r io.Reader) (*externalapi.EvidenceRef, error) {
	schemeID, err := serialization.ReadVarString(r)
	if err != nil {
		return nil, err
	}

	evidenceHash, err := serialization.ReadDomainHash(r)
	if err != nil {
		return nil, err
	}

	return &externalapi.EvidenceRef{
		SchemeID:     schemeID,
		EvidenceHash: evidenceHash,
	}, nil
}

func writeWmProfile(w io.Writer, profile *externalapi.WmProfile) error {
	return serialization.WriteElements(w,
		profile.TauInput, profile.TauFeat, profile.LogitBandLow, profile.LogitBandHigh)
}

func readWmProfile(r io.Reader) (*externalapi.WmProfile, error) {
	profile := &externalapi.WmProfile{}
	err := serialization.ReadElements(r,
		&profile.TauInput, &profile.TauFeat, &profile.LogitBandLow, &profile.LogitBandHigh)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func readAccountID(r io.Reader) (*externalapi.AccountID, error) {
	hash, err := serialization.ReadDomainHash(r)
	if err != nil {
		return nil, err
	}
	return (*externalapi.AccountID)(hash), nil
}

func readArtefactID(r io.Reader) (*externalapi.ArtefactID, error) {
	hash, err := serialization.ReadDomainHash(r)
	if err != nil {
		return nil, err
	}
	return (*externalapi.ArtefactID)(hash), nil
}
