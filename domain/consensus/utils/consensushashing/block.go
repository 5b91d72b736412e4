package consensushashing

import (
	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensusserialization"
	"github.com/wmchain/wmchaind/domain/consensus/utils/hashes"
)

// BlockHash returns the block hash: the hash of the canonical encoding of
// the block's header. Transactions are bound in through the header's
// TransactionRoot, not hashed here.
func BlockHash(block *externalapi.DomainBlock) *externalapi.DomainHash {
	return HeaderHash(block.Header)
}

// HeaderHash returns the hash of the canonical encoding of header.
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	writer := hashes.NewBlockHashWriter()
	err := consensusserialization.WriteHeader(writer, header)
	if err != nil {
		// It never returns an error when writing to a hash writer
		panic(errors.Wrap(err, "this should never happen. Hash digest should never produce an error"))
	}

	return writer.Finalize()
}
