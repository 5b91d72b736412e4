package blockvalidator

import (
	"time"

	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/infrastructure/metrics"
)

// blockValidator chains the structural stage and the ML-authenticity
// stage. The structural stage runs first and short-circuits, so no
// verifier call is ever made on behalf of a structurally invalid block.
type blockValidator struct {
	baseValidity model.BlockValidator
	mlValidity   model.BlockValidator
	metrics      *metrics.Metrics
}

// New composes the two validation stages into the validator consumed by
// the consensus engine.
func New(baseValidity model.BlockValidator, mlValidity model.BlockValidator,
	metrics *metrics.Metrics) model.BlockValidator {

	return &blockValidator{
		baseValidity: baseValidity,
		mlValidity:   mlValidity,
		metrics:      metrics,
	}
}

func (v *blockValidator) ValidateBlock(block *externalapi.DomainBlock) error {
	start := time.Now()
	defer func() {
		v.metrics.BlockValidationSeconds.Observe(time.Since(start).Seconds())
	}()

	err := v.baseValidity.ValidateBlock(block)
	if err != nil {
		log.Debugf("Block at height %d failed structural validation: %s", block.Header.Height, err)
		return err
	}

	err = v.mlValidity.ValidateBlock(block)
	if err != nil {
		log.Debugf("Block at height %d failed ML-authenticity validation: %s", block.Header.Height, err)
		return err
	}
	return nil
}
