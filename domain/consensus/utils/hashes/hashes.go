package hashes

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	blockDomain           = "BlockHash"
	transactionDomain     = "TransactionHash"
	transactionRootDomain = "TransactionRoot"
	verificationKeyDomain = "VerificationKey"
	accountDomain         = "AccountID"
	artefactDomain        = "ArtefactID"
	evidenceDomain        = "EvidenceHash"
)

// NewBlockHashWriter returns a new HashWriter used for block hashes
func NewBlockHashWriter() HashWriter {
	return newKeyedHashWriter(blockDomain)
}

// NewTransactionHashWriter returns a new HashWriter used for transaction hashes
func NewTransactionHashWriter() HashWriter {
	return newKeyedHashWriter(transactionDomain)
}

// NewTransactionRootHashWriter returns a new HashWriter used for the
// transaction-root commitment of a block
func NewTransactionRootHashWriter() HashWriter {
	return newKeyedHashWriter(transactionRootDomain)
}

// NewVerificationKeyHashWriter returns a new HashWriter used for digesting
// verification keys into cache keys
func NewVerificationKeyHashWriter() HashWriter {
	return newKeyedHashWriter(verificationKeyDomain)
}

// NewAccountIDHashWriter returns a new HashWriter used for deriving account
// IDs out of public key material
func NewAccountIDHashWriter() HashWriter {
	return newKeyedHashWriter(accountDomain)
}

// NewArtefactIDHashWriter returns a new HashWriter used for deriving
// artefact IDs out of model bytes
func NewArtefactIDHashWriter() HashWriter {
	return newKeyedHashWriter(artefactDomain)
}

// NewEvidenceHashWriter returns a new HashWriter used for hashing watermark
// evidence payloads
func NewEvidenceHashWriter() HashWriter {
	return newKeyedHashWriter(evidenceDomain)
}

func newKeyedHashWriter(key string) HashWriter {
	blake, err := blake2b.New256([]byte(key))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", key))
	}
	return HashWriter{blake}
}
