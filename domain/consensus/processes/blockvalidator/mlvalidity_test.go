package blockvalidator

import (
	"testing"

	"github.com/wmchain/wmchaind/domain/consensus/datastructures/blockstore"
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/ruleerrors"
)

const testMaxArtefactsPerBlock = 4

func checkAuthenticityError(t *testing.T, err error,
	expectedFailingArtefacts ...*externalapi.ArtefactID) {

	t.Helper()
	if err == nil {
		t.Fatalf("ValidateBlock unexpectedly succeeded, expected an authenticity error")
	}
	authErr, ok := ruleerrors.AsAuthenticityError(err)
	if !ok {
		t.Fatalf("ValidateBlock returned %s, expected an authenticity error", err)
	}
	if len(authErr.FailingKeys) != len(expectedFailingArtefacts) {
		t.Fatalf("AuthenticityError names %d keys, expected %d",
			len(authErr.FailingKeys), len(expectedFailingArtefacts))
	}
	for i, expected := range expectedFailingArtefacts {
		if !authErr.FailingKeys[i].ArtefactID.Equal(expected) {
			t.Fatalf("AuthenticityError key %d names artefact %s, expected %s",
				i, authErr.FailingKeys[i].ArtefactID, expected)
		}
	}
}

func TestMLValidityCachesVerdicts(t *testing.T) {
	store := blockstore.NewInMemory()
	verifier := newFakeVerifier()
	validator := newMLValidityForTest(store, verifier, testMaxArtefactsPerBlock, false)

	block := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{registrationForTest(0x01)})

	err := validator.ValidateBlock(block)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly failed: %s", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("verifier was called %d times, expected 1", verifier.calls)
	}

	// The same key again resolves from the cache without a verifier call.
	err = validator.ValidateBlock(block)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly failed on the second pass: %s", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("verifier was called %d times after the second pass, expected 1", verifier.calls)
	}
}

func TestMLValidityNegativeVerdictCached(t *testing.T) {
	store := blockstore.NewInMemory()
	verifier := newFakeVerifier()
	validator := newMLValidityForTest(store, verifier, testMaxArtefactsPerBlock, false)

	registration := registrationForTest(0x01)
	key := externalapi.VerificationKeyFromRegistration(registration.RegisterModel)
	verifier.scriptVerdict(key, &externalapi.MLVerdict{OK: false, TriggerAcc: 0.41,
		FeatDist: 0.55, LogitStat: 0.30, LatencyMS: 95})

	block := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{registration})

	checkAuthenticityError(t, validator.ValidateBlock(block), registration.RegisterModel.ArtefactID)
	if verifier.calls != 1 {
		t.Fatalf("verifier was called %d times, expected 1", verifier.calls)
	}

	// A negative verdict is definitive and comes from the cache afterwards.
	checkAuthenticityError(t, validator.ValidateBlock(block), registration.RegisterModel.ArtefactID)
	if verifier.calls != 1 {
		t.Fatalf("verifier was called %d times after the second pass, expected 1", verifier.calls)
	}
}

func TestMLValidityAllOrNothing(t *testing.T) {
	store := blockstore.NewInMemory()
	verifier := newFakeVerifier()
	validator := newMLValidityForTest(store, verifier, testMaxArtefactsPerBlock, false)

	good := registrationForTest(0x01)
	firstBad := registrationForTest(0x02)
	secondBad := registrationForTest(0x03)
	badVerdict := &externalapi.MLVerdict{OK: false, TriggerAcc: 0.2, FeatDist: 0.8,
		LogitStat: 0.4, LatencyMS: 80}
	verifier.scriptVerdict(externalapi.VerificationKeyFromRegistration(firstBad.RegisterModel), badVerdict)
	verifier.scriptVerdict(externalapi.VerificationKeyFromRegistration(secondBad.RegisterModel), badVerdict)

	block := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{good, firstBad, secondBad})

	// One failing artefact rejects the whole block, and every failing key
	// is reported in block order.
	checkAuthenticityError(t, validator.ValidateBlock(block),
		firstBad.RegisterModel.ArtefactID, secondBad.RegisterModel.ArtefactID)
	if verifier.calls != 3 {
		t.Fatalf("verifier was called %d times, expected 3", verifier.calls)
	}
}

func TestMLValidityCapBeforeCalls(t *testing.T) {
	store := blockstore.NewInMemory()
	verifier := newFakeVerifier()
	validator := newMLValidityForTest(store, verifier, 1, false)

	block := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{registrationForTest(0x01), registrationForTest(0x02)})

	checkRuleError(t, validator.ValidateBlock(block), ruleerrors.ErrTooManyArtefacts)
	if verifier.calls != 0 {
		t.Fatalf("verifier was called %d times over the cap, expected 0", verifier.calls)
	}
}

func TestMLValidityDeduplicatesKeys(t *testing.T) {
	store := blockstore.NewInMemory()
	verifier := newFakeVerifier()
	validator := newMLValidityForTest(store, verifier, 1, false)

	// Two registrations carrying the identical verification key count as
	// one key toward the cap and cause one verifier call.
	block := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{registrationForTest(0x01), registrationForTest(0x01)})

	err := validator.ValidateBlock(block)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly failed: %s", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("verifier was called %d times, expected 1", verifier.calls)
	}
}

func TestMLValidityVerifierErrorNotCached(t *testing.T) {
	store := blockstore.NewInMemory()
	verifier := newFakeVerifier()
	validator := newMLValidityForTest(store, verifier, testMaxArtefactsPerBlock, false)

	registration := registrationForTest(0x01)
	key := externalapi.VerificationKeyFromRegistration(registration.RegisterModel)
	verifier.scriptError(key, model.NewVerifierError(model.VerifierErrorTimeout,
		"verification timed out after 100ms"))

	block := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{registration})

	checkAuthenticityError(t, validator.ValidateBlock(block), registration.RegisterModel.ArtefactID)
	if verifier.calls != 1 {
		t.Fatalf("verifier was called %d times, expected 1", verifier.calls)
	}
	_, found, err := store.GetVerdict(key)
	if err != nil {
		t.Fatalf("GetVerdict unexpectedly failed: %s", err)
	}
	if found {
		t.Fatalf("a timed-out verification was unexpectedly cached")
	}

	// Once the verifier recovers the same key is retried and passes.
	verifier.clearErrors()
	err = validator.ValidateBlock(block)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly failed after the verifier recovered: %s", err)
	}
	if verifier.calls != 2 {
		t.Fatalf("verifier was called %d times after recovery, expected 2", verifier.calls)
	}
}

func TestMLValidityAdmitOnVerifierOutage(t *testing.T) {
	store := blockstore.NewInMemory()
	verifier := newFakeVerifier()
	validator := newMLValidityForTest(store, verifier, testMaxArtefactsPerBlock, true)

	registration := registrationForTest(0x01)
	key := externalapi.VerificationKeyFromRegistration(registration.RegisterModel)
	verifier.scriptError(key, model.NewVerifierError(model.VerifierErrorTransport,
		"connection refused"))

	block := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{registration})

	err := validator.ValidateBlock(block)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly failed with admit-on-verifier-outage set: %s", err)
	}
	_, found, err := store.GetVerdict(key)
	if err != nil {
		t.Fatalf("GetVerdict unexpectedly failed: %s", err)
	}
	if found {
		t.Fatalf("an admitted-on-outage key was unexpectedly cached")
	}
}

func TestMLValidityIgnoresNonRegistrations(t *testing.T) {
	store := blockstore.NewInMemory()
	verifier := newFakeVerifier()
	validator := newMLValidityForTest(store, verifier, testMaxArtefactsPerBlock, false)

	block := blockForTest(externalapi.NewZeroHash(), 0, 1000,
		[]*externalapi.DomainTransaction{transferForTest()})

	err := validator.ValidateBlock(block)
	if err != nil {
		t.Fatalf("ValidateBlock unexpectedly failed: %s", err)
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier was called %d times for a block without registrations, expected 0",
			verifier.calls)
	}
}
