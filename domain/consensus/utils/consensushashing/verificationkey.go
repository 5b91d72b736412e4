package consensushashing

import (
	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensusserialization"
	"github.com/wmchain/wmchaind/domain/consensus/utils/hashes"
)

// VerificationKeyHash digests a verification key into the fixed-size hash
// the verification cache is keyed by. Identical keys always digest to the
// same hash, so concurrent writers racing on the same key are idempotent.
func VerificationKeyHash(key *externalapi.VerificationKey) *externalapi.DomainHash {
	writer := hashes.NewVerificationKeyHashWriter()
	err := consensusserialization.WriteVerificationKey(writer, key)
	if err != nil {
		// It never returns an error when writing to a hash writer
		panic(errors.Wrap(err, "this should never happen. Hash digest should never produce an error"))
	}

	return writer.Finalize()
}
