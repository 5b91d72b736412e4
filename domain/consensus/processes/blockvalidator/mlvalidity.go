package blockvalidator

import (
	"time"

	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/ruleerrors"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensushashing"
	"github.com/wmchain/wmchaind/infrastructure/metrics"
)

// mlValidity gates block acceptance on watermark authenticity. Every
// RegisterModel transaction contributes a verification key; keys are
// deduplicated in first-appearance order, checked against the per-block
// cap before any verifier call is made, and then resolved one by one
// through the verdict cache or the remote verifier.
//
// A verifier failure (timeout, transport, protocol) counts as a failed
// authenticity check unless admitOnVerifierOutage is set, and is never
// cached. Definitive verdicts are cached whether positive or negative.
// All keys are evaluated even after the first failure, so the returned
// AuthenticityError names every failing artefact.
type mlValidity struct {
	store    model.BlockStore
	verifier model.MLVerifier
	metrics  *metrics.Metrics

	maxArtefactsPerBlock  uint64
	verifyTimeout         time.Duration
	admitOnVerifierOutage bool
}

// NewMLValidity creates the ML-authenticity validation stage.
func NewMLValidity(store model.BlockStore, verifier model.MLVerifier, metrics *metrics.Metrics,
	maxArtefactsPerBlock uint64, verifyTimeout time.Duration,
	admitOnVerifierOutage bool) model.BlockValidator {

	return &mlValidity{
		store:                 store,
		verifier:              verifier,
		metrics:               metrics,
		maxArtefactsPerBlock:  maxArtefactsPerBlock,
		verifyTimeout:         verifyTimeout,
		admitOnVerifierOutage: admitOnVerifierOutage,
	}
}

func (v *mlValidity) ValidateBlock(block *externalapi.DomainBlock) error {
	onEnd := v.startTimer()
	defer onEnd()

	keys := collectVerificationKeys(block)
	if uint64(len(keys)) > v.maxArtefactsPerBlock {
		return ruleerrors.Errorf(ruleerrors.ErrTooManyArtefacts,
			"block carries %d distinct verification keys, while the maximum allowed is %d",
			len(keys), v.maxArtefactsPerBlock)
	}

	var failingKeys []*externalapi.VerificationKey
	for _, key := range keys {
		ok, err := v.resolveKey(key)
		if err != nil {
			return err
		}
		if !ok {
			failingKeys = append(failingKeys, key)
		}
	}

	if len(failingKeys) > 0 {
		v.metrics.BlocksRejectedML.Inc()
		return ruleerrors.NewAuthenticityError(failingKeys)
	}
	return nil
}

func (v *mlValidity) startTimer() func() {
	start := time.Now()
	return func() {
		v.metrics.MLAuthSeconds.Observe(time.Since(start).Seconds())
	}
}

// resolveKey produces the authenticity outcome for one verification key,
// consulting the cache first. The returned error is reserved for storage
// failures; verifier failures are folded into the boolean outcome.
func (v *mlValidity) resolveKey(key *externalapi.VerificationKey) (bool, error) {
	cached, found, err := v.store.GetVerdict(key)
	if err != nil {
		return false, err
	}
	if found {
		v.metrics.ObserveCacheHit()
		return cached.OK, nil
	}
	v.metrics.ObserveCacheMiss()

	verdict, err := v.verifier.Verify(key, v.verifyTimeout)
	if err != nil {
		verifierError, isVerifierError := model.AsVerifierError(err)
		if !isVerifierError {
			return false, err
		}
		v.metrics.MLVerifierErrors.Inc()
		if v.admitOnVerifierOutage {
			log.Warnf("Verifier call for artefact %s failed (%s), admitting due to "+
				"admit-on-verifier-outage", key.ArtefactID, verifierError)
			return true, nil
		}
		log.Warnf("Verifier call for artefact %s failed: %s", key.ArtefactID, verifierError)
		return false, nil
	}

	// Definitive verdicts are cached even when negative. Failed calls
	// above never reach this point, so an outage today doesn't poison
	// the cache for tomorrow.
	err = v.store.PutVerdict(key, verdict)
	if err != nil {
		return false, err
	}
	return verdict.OK, nil
}

// collectVerificationKeys extracts the verification key of every
// RegisterModel transaction, deduplicated in order of first appearance.
func collectVerificationKeys(block *externalapi.DomainBlock) []*externalapi.VerificationKey {
	var keys []*externalapi.VerificationKey
	seen := make(map[externalapi.DomainHash]struct{})
	for _, tx := range block.Transactions {
		if tx.Type != externalapi.TransactionTypeRegisterModel {
			continue
		}
		key := externalapi.VerificationKeyFromRegistration(tx.RegisterModel)
		keyHash := consensushashing.VerificationKeyHash(key)
		if _, exists := seen[*keyHash]; exists {
			continue
		}
		seen[*keyHash] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
