package externalapi

// DomainBlock represents a block in the chain
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlock{&DomainBlockHeader{}, []*DomainTransaction{}}

// Equal returns whether block equals to other
func (block *DomainBlock) Equal(other *DomainBlock) bool {
	if block == nil || other == nil {
		return block == other
	}

	if len(block.Transactions) != len(other.Transactions) {
		return false
	}

	if !block.Header.Equal(other.Header) {
		return false
	}

	for i, tx := range block.Transactions {
		if !tx.Equal(other.Transactions[i]) {
			return false
		}
	}

	return true
}

// Clone returns a clone of DomainBlock
func (block *DomainBlock) Clone() *DomainBlock {
	transactionClone := make([]*DomainTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactionClone[i] = tx.Clone()
	}

	return &DomainBlock{
		Header:       block.Header.Clone(),
		Transactions: transactionClone,
	}
}

// DomainBlockHeader represents the header part of a block. The block's
// hash is the hash of the canonical header encoding only; transactions
// are bound in through TransactionRoot rather than hashed independently.
type DomainBlockHeader struct {
	ParentHash      *DomainHash
	Height          uint64
	Timestamp       uint64
	TransactionRoot *DomainHash
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{&DomainHash{}, 0, 0, &DomainHash{}}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	if !header.ParentHash.Equal(other.ParentHash) {
		return false
	}

	if header.Height != other.Height {
		return false
	}

	if header.Timestamp != other.Timestamp {
		return false
	}

	return header.TransactionRoot.Equal(other.TransactionRoot)
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	return &DomainBlockHeader{
		ParentHash:      header.ParentHash,
		Height:          header.Height,
		Timestamp:       header.Timestamp,
		TransactionRoot: header.TransactionRoot,
	}
}
