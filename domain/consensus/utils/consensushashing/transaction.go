package consensushashing

import (
	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensusserialization"
	"github.com/wmchain/wmchaind/domain/consensus/utils/hashes"
)

// TransactionHash returns the hash of the canonical encoding of tx.
func TransactionHash(tx *externalapi.DomainTransaction) *externalapi.DomainHash {
	writer := hashes.NewTransactionHashWriter()
	err := consensusserialization.WriteTransaction(writer, tx)
	if err != nil {
		// It never returns an error when writing to a hash writer
		panic(errors.Wrap(err, "this should never happen. Hash digest should never produce an error"))
	}

	return writer.Finalize()
}

// TransactionRoot returns the order-preserving commitment to the given
// transaction sequence: the hash of the concatenated transaction hashes.
func TransactionRoot(transactions []*externalapi.DomainTransaction) *externalapi.DomainHash {
	writer := hashes.NewTransactionRootHashWriter()
	for _, tx := range transactions {
		writer.InfallibleWrite(TransactionHash(tx).ByteSlice())
	}

	return writer.Finalize()
}
