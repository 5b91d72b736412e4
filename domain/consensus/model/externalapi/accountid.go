package externalapi

// AccountID identifies an account. It is the hash of the account's
// public key material.
type AccountID DomainHash

// NewAccountIDFromByteArray constructs a new AccountID out of a byte array
func NewAccountIDFromByteArray(accountIDBytes *[DomainHashSize]byte) *AccountID {
	return (*AccountID)(NewDomainHashFromByteArray(accountIDBytes))
}

// NewAccountIDFromByteSlice constructs a new AccountID out of a byte slice.
// Returns an error if the length of the byte slice is not exactly
// `DomainHashSize`
func NewAccountIDFromByteSlice(accountIDBytes []byte) (*AccountID, error) {
	hash, err := NewDomainHashFromByteSlice(accountIDBytes)
	if err != nil {
		return nil, err
	}
	return (*AccountID)(hash), nil
}

// NewAccountIDFromString constructs a new AccountID out of a hex-encoded string
func NewAccountIDFromString(accountIDString string) (*AccountID, error) {
	hash, err := NewDomainHashFromString(accountIDString)
	if err != nil {
		return nil, err
	}
	return (*AccountID)(hash), nil
}

// String stringifies an account ID.
func (id AccountID) String() string {
	return DomainHash(id).String()
}

// Clone returns a clone of AccountID
func (id *AccountID) Clone() *AccountID {
	idClone := *id
	return &idClone
}

// Equal returns whether id equals to other
func (id *AccountID) Equal(other *AccountID) bool {
	return (*DomainHash)(id).Equal((*DomainHash)(other))
}

// ByteArray returns the bytes in this AccountID represented as a byte array.
// The account ID bytes are cloned, therefore it is safe to modify the resulting array.
func (id *AccountID) ByteArray() *[DomainHashSize]byte {
	return (*DomainHash)(id).BytesArray()
}

// ByteSlice returns the bytes in this AccountID represented as a byte slice.
// The account ID bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *AccountID) ByteSlice() []byte {
	return (*DomainHash)(id).ByteSlice()
}
