package externalapi

import "bytes"

// TransactionType is the discriminant of the DomainTransaction sum type.
type TransactionType uint8

// The allowed transaction types. Exactly one payload field of
// DomainTransaction is set, matching this tag.
const (
	TransactionTypeRegisterModel TransactionType = iota
	TransactionTypeUseModel
	TransactionTypeTransfer
)

func (transactionType TransactionType) String() string {
	switch transactionType {
	case TransactionTypeRegisterModel:
		return "RegisterModel"
	case TransactionTypeUseModel:
		return "UseModel"
	case TransactionTypeTransfer:
		return "Transfer"
	default:
		return "Unknown"
	}
}

// DomainTransaction represents a transaction in the chain. It is a closed
// sum type: Type selects which of the payload pointers is set, and the
// other two are nil. Fee, Nonce and Signature are carried on the envelope
// for every transaction type.
//
// Transactions are immutable once constructed. A block holds an ordered
// sequence of transactions; validation preserves that order.
type DomainTransaction struct {
	Type      TransactionType
	Fee       uint64
	Nonce     uint64
	Signature []byte

	RegisterModel *RegisterModelPayload
	UseModel      *UseModelPayload
	Transfer      *TransferPayload
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainTransaction{TransactionTypeRegisterModel, 0, 0, []byte{},
	&RegisterModelPayload{}, &UseModelPayload{}, &TransferPayload{}}

// Equal returns whether tx equals to other
func (tx *DomainTransaction) Equal(other *DomainTransaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if tx.Type != other.Type {
		return false
	}

	if tx.Fee != other.Fee {
		return false
	}

	if tx.Nonce != other.Nonce {
		return false
	}

	if !bytes.Equal(tx.Signature, other.Signature) {
		return false
	}

	if !tx.RegisterModel.Equal(other.RegisterModel) {
		return false
	}

	if !tx.UseModel.Equal(other.UseModel) {
		return false
	}

	return tx.Transfer.Equal(other.Transfer)
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	signatureClone := make([]byte, len(tx.Signature))
	copy(signatureClone, tx.Signature)

	txClone := &DomainTransaction{
		Type:      tx.Type,
		Fee:       tx.Fee,
		Nonce:     tx.Nonce,
		Signature: signatureClone,
	}
	if tx.RegisterModel != nil {
		txClone.RegisterModel = tx.RegisterModel.Clone()
	}
	if tx.UseModel != nil {
		txClone.UseModel = tx.UseModel.Clone()
	}
	if tx.Transfer != nil {
		txClone.Transfer = tx.Transfer.Clone()
	}
	return txClone
}

// RegisterModelPayload introduces a new model artefact on-chain. Once a
// registration is accepted, the store holds an ArtefactMetadata record
// keyed by the artefact ID.
type RegisterModelPayload struct {
	Owner      *AccountID
	ArtefactID *ArtefactID
	Evidence   *EvidenceRef
	WmProfile  *WmProfile
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &RegisterModelPayload{&AccountID{}, &ArtefactID{}, &EvidenceRef{}, &WmProfile{}}

// Equal returns whether payload equals to other
func (payload *RegisterModelPayload) Equal(other *RegisterModelPayload) bool {
	if payload == nil || other == nil {
		return payload == other
	}

	if !payload.Owner.Equal(other.Owner) {
		return false
	}

	if !payload.ArtefactID.Equal(other.ArtefactID) {
		return false
	}

	if !payload.Evidence.Equal(other.Evidence) {
		return false
	}

	return payload.WmProfile.Equal(other.WmProfile)
}

// Clone returns a clone of RegisterModelPayload
func (payload *RegisterModelPayload) Clone() *RegisterModelPayload {
	return &RegisterModelPayload{
		Owner:      payload.Owner.Clone(),
		ArtefactID: payload.ArtefactID.Clone(),
		Evidence:   payload.Evidence.Clone(),
		WmProfile:  payload.WmProfile.Clone(),
	}
}

// UseModelPayload records usage of an already-registered model. It does
// not change ownership; it creates an auditable record that a particular
// account invoked a model for some task.
type UseModelPayload struct {
	Caller     *AccountID
	ArtefactID *ArtefactID
	Task       string
	Version    string
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &UseModelPayload{&AccountID{}, &ArtefactID{}, "", ""}

// Equal returns whether payload equals to other
func (payload *UseModelPayload) Equal(other *UseModelPayload) bool {
	if payload == nil || other == nil {
		return payload == other
	}

	if !payload.Caller.Equal(other.Caller) {
		return false
	}

	if !payload.ArtefactID.Equal(other.ArtefactID) {
		return false
	}

	if payload.Task != other.Task {
		return false
	}

	return payload.Version == other.Version
}

// Clone returns a clone of UseModelPayload
func (payload *UseModelPayload) Clone() *UseModelPayload {
	return &UseModelPayload{
		Caller:     payload.Caller.Clone(),
		ArtefactID: payload.ArtefactID.Clone(),
		Task:       payload.Task,
		Version:    payload.Version,
	}
}

// TransferPayload moves a fungible balance between two accounts. It is
// intentionally minimal; there is no full asset layer behind it.
type TransferPayload struct {
	From   *AccountID
	To     *AccountID
	Amount uint64
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &TransferPayload{&AccountID{}, &AccountID{}, 0}

// Equal returns whether payload equals to other
func (payload *TransferPayload) Equal(other *TransferPayload) bool {
	if payload == nil || other == nil {
		return payload == other
	}

	if !payload.From.Equal(other.From) {
		return false
	}

	if !payload.To.Equal(other.To) {
		return false
	}

	return payload.Amount == other.Amount
}

// Clone returns a clone of TransferPayload
func (payload *TransferPayload) Clone() *TransferPayload {
	return &TransferPayload{
		From:   payload.From.Clone(),
		To:     payload.To.Clone(),
		Amount: payload.Amount,
	}
}
