package externalapi

// ArtefactID is the content-addressed identifier of a model artefact.
// It is the hash of the artefact's canonical bytes, so the same logical
// artefact always maps to the same ID.
type ArtefactID DomainHash

// NewArtefactIDFromByteArray constructs a new ArtefactID out of a byte array
func NewArtefactIDFromByteArray(artefactIDBytes *[DomainHashSize]byte) *ArtefactID {
	return (*ArtefactID)(NewDomainHashFromByteArray(artefactIDBytes))
}

// NewArtefactIDFromByteSlice constructs a new ArtefactID out of a byte slice.
// Returns an error if the length of the byte slice is not exactly
// `DomainHashSize`
func NewArtefactIDFromByteSlice(artefactIDBytes []byte) (*ArtefactID, error) {
	hash, err := NewDomainHashFromByteSlice(artefactIDBytes)
	if err != nil {
		return nil, err
	}
	return (*ArtefactID)(hash), nil
}

// NewArtefactIDFromString constructs a new ArtefactID out of a hex-encoded string
func NewArtefactIDFromString(artefactIDString string) (*ArtefactID, error) {
	hash, err := NewDomainHashFromString(artefactIDString)
	if err != nil {
		return nil, err
	}
	return (*ArtefactID)(hash), nil
}

// String stringifies an artefact ID.
func (id ArtefactID) String() string {
	return DomainHash(id).String()
}

// Clone returns a clone of ArtefactID
func (id *ArtefactID) Clone() *ArtefactID {
	idClone := *id
	return &idClone
}

// Equal returns whether id equals to other
func (id *ArtefactID) Equal(other *ArtefactID) bool {
	return (*DomainHash)(id).Equal((*DomainHash)(other))
}

// ByteArray returns the bytes in this ArtefactID represented as a byte array.
// The artefact ID bytes are cloned, therefore it is safe to modify the resulting array.
func (id *ArtefactID) ByteArray() *[DomainHashSize]byte {
	return (*DomainHash)(id).BytesArray()
}

// ByteSlice returns the bytes in this ArtefactID represented as a byte slice.
// The artefact ID bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *ArtefactID) ByteSlice() []byte {
	return (*DomainHash)(id).ByteSlice()
}
