package consensusserialization

import (
	"bytes"
	"io"

	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/serialization"
)

// WriteHeader writes the canonical encoding of header to w.
func WriteHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	return serialization.WriteElements(w,
		header.ParentHash, header.Height, header.Timestamp, header.TransactionRoot)
}

// ReadHeader reads a canonically encoded header from r.
func ReadHeader(r io.Reader) (*externalapi.DomainBlockHeader, error) {
	parentHash, err := serialization.ReadDomainHash(r)
	if err != nil {
		return nil, err
	}

	header := &externalapi.DomainBlockHeader{ParentHash: parentHash}
	err = serialization.ReadElements(r, &header.Height, &header.Timestamp)
	if err != nil {
		return nil, err
	}

	header.TransactionRoot, err = serialization.ReadDomainHash(r)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// SerializeHeader returns the canonical encoding of header.
func SerializeHeader(header *externalapi.DomainBlockHeader) ([]byte, error) {
	var buffer bytes.Buffer
	err := WriteHeader(&buffer, header)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DeserializeHeader deserializes a canonically encoded header.
func DeserializeHeader(headerBytes []byte) (*externalapi.DomainBlockHeader, error) {
	return ReadHeader(bytes.NewReader(headerBytes))
}

// WriteBlock writes the canonical encoding of block to w.
func WriteBlock(w io.Writer, block *externalapi.DomainBlock) error {
	err := WriteHeader(w, block.Header)
	if err != nil {
		return err
	}

	err = serialization.WriteElement(w, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}

	for _, tx := range block.Transactions {
		err = WriteTransaction(w, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadBlock reads a canonically encoded block from r.
func ReadBlock(r io.Reader) (*externalapi.DomainBlock, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	var transactionCount uint64
	err = serialization.ReadElement(r, &transactionCount)
	if err != nil {
		return nil, err
	}

	transactions := make([]*externalapi.DomainTransaction, 0, transactionCount)
	for i := uint64(0); i < transactionCount; i++ {
		tx, err := ReadTransaction(r)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return &externalapi.DomainBlock{
		Header:       header,
		Transactions: transactions,
	}, nil
}

// SerializeBlock returns the canonical encoding of block.
func SerializeBlock(block *externalapi.DomainBlock) ([]byte, error) {
	var buffer bytes.Buffer
	err := WriteBlock(&buffer, block)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DeserializeBlock deserializes a canonically encoded block.
func DeserializeBlock(blockBytes []byte) (*externalapi.DomainBlock, error) {
	return ReadBlock(bytes.NewReader(blockBytes))
}

// BlockSize returns the canonical serialized size of block in bytes.
func BlockSize(block *externalapi.DomainBlock) (uint64, error) {
	blockBytes, err := SerializeBlock(block)
	if err != nil {
		return 0, err
	}
	return uint64(len(blockBytes)), nil
}
