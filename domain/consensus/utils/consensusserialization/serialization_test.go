package consensusserialization

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

func hashForTest(lastByte byte) *externalapi.DomainHash {
	var hashBytes [externalapi.DomainHashSize]byte
	hashBytes[externalapi.DomainHashSize-1] = lastByte
	return externalapi.NewDomainHashFromByteArray(&hashBytes)
}

func accountIDForTest(lastByte byte) *externalapi.AccountID {
	return externalapi.NewAccountIDFromByteArray(hashForTest(lastByte).BytesArray())
}

func transactionsForTest() []*externalapi.DomainTransaction {
	return []*externalapi.DomainTransaction{
		{
			Type:      externalapi.TransactionTypeRegisterModel,
			Fee:       10,
			Nonce:     1,
			Signature: []byte{0xde, 0xad},
			RegisterModel: &externalapi.RegisterModelPayload{
				Owner:      accountIDForTest(0x01),
				ArtefactID: externalapi.NewArtefactIDFromByteArray(hashForTest(0x02).BytesArray()),
				Evidence: &externalapi.EvidenceRef{
					SchemeID:     "multi_factor_v1",
					EvidenceHash: hashForTest(0x03),
				},
				WmProfile: &externalapi.WmProfile{
					TauInput:      0.9,
					TauFeat:       0.1,
					LogitBandLow:  0.02,
					LogitBandHigh: 0.05,
				},
			},
		},
		{
			Type:      externalapi.TransactionTypeUseModel,
			Fee:       2,
			Nonce:     2,
			Signature: []byte{0xbe, 0xef},
			UseModel: &externalapi.UseModelPayload{
				Caller:     accountIDForTest(0x04),
				ArtefactID: externalapi.NewArtefactIDFromByteArray(hashForTest(0x02).BytesArray()),
				Task:       "classification",
				Version:    "1.2.0",
			},
		},
		{
			Type:      externalapi.TransactionTypeTransfer,
			Fee:       1,
			Nonce:     3,
			Signature: nil,
			Transfer: &externalapi.TransferPayload{
				From:   accountIDForTest(0x01),
				To:     accountIDForTest(0x04),
				Amount: 1 << 40,
			},
		},
	}
}

func TestBlockRoundTrip(t *testing.T) {
	block := &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			ParentHash:      hashForTest(0x10),
			Height:          42,
			Timestamp:       1700000000000,
			TransactionRoot: hashForTest(0x11),
		},
		Transactions: transactionsForTest(),
	}

	serialized, err := SerializeBlock(block)
	if err != nil {
		t.Fatalf("SerializeBlock unexpectedly failed: %s", err)
	}
	deserialized, err := DeserializeBlock(serialized)
	if err != nil {
		t.Fatalf("DeserializeBlock unexpectedly failed: %s", err)
	}
	if !deserialized.Equal(block) {
		t.Fatalf("the deserialized block differs from the original:\noriginal: %s\ngot: %s",
			spew.Sdump(block), spew.Sdump(deserialized))
	}

	size, err := BlockSize(block)
	if err != nil {
		t.Fatalf("BlockSize unexpectedly failed: %s", err)
	}
	if size != uint64(len(serialized)) {
		t.Fatalf("BlockSize returned %d, while the encoding is %d bytes", size, len(serialized))
	}
}

func TestEncodingIsDeterministic(t *testing.T) {
	transactions := transactionsForTest()
	first, err := SerializeTransaction(transactions[0])
	if err != nil {
		t.Fatalf("SerializeTransaction unexpectedly failed: %s", err)
	}
	second, err := SerializeTransaction(transactions[0].Clone())
	if err != nil {
		t.Fatalf("SerializeTransaction unexpectedly failed: %s", err)
	}
	if string(first) != string(second) {
		t.Fatalf("two encodings of the same transaction differ")
	}
}

func TestDeserializeTransactionRejectsUnknownType(t *testing.T) {
	serialized, err := SerializeTransaction(transactionsForTest()[2])
	if err != nil {
		t.Fatalf("SerializeTransaction unexpectedly failed: %s", err)
	}
	serialized[0] = 0xff
	_, err = DeserializeTransaction(serialized)
	if err == nil {
		t.Fatalf("DeserializeTransaction unexpectedly accepted an unknown transaction type")
	}
}

func TestVerificationKeyEncodingSeparatesFields(t *testing.T) {
	key := &externalapi.VerificationKey{
		ArtefactID:   externalapi.NewArtefactIDFromByteArray(hashForTest(0x01).BytesArray()),
		SchemeID:     "multi_factor_v1",
		EvidenceHash: hashForTest(0x02),
		WmProfile:    &externalapi.WmProfile{TauInput: 0.9, TauFeat: 0.1, LogitBandLow: 0.02, LogitBandHigh: 0.05},
	}
	baseline, err := SerializeVerificationKey(key)
	if err != nil {
		t.Fatalf("SerializeVerificationKey unexpectedly failed: %s", err)
	}

	mutated := key.Clone()
	mutated.WmProfile.LogitBandHigh = 0.06
	encoding, err := SerializeVerificationKey(mutated)
	if err != nil {
		t.Fatalf("SerializeVerificationKey unexpectedly failed: %s", err)
	}
	if string(encoding) == string(baseline) {
		t.Fatalf("verification keys differing in profile share an encoding")
	}
}
