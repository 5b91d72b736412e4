package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

// httpVerifier implements model.MLVerifier against a watermark-verification
// service exposing POST {baseURL}/verify with a JSON body. Hashes travel
// hex-encoded; the profile travels as named float fields.
type httpVerifier struct {
	baseURL string
	client  *http.Client
}

// New creates a verifier client for the service at baseURL, with or
// without a trailing slash.
func New(baseURL string) model.MLVerifier {
	return &httpVerifier{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

type verifyRequest struct {
	Aid          string        `json:"aid"`
	SchemeID     string        `json:"scheme_id"`
	EvidenceHash string        `json:"evidence_hash"`
	WmProfile    wmProfileJSON `json:"wm_profile"`
}

type wmProfileJSON struct {
	TauInput      float64 `json:"tau_input"`
	TauFeat       float64 `json:"tau_feat"`
	LogitBandLow  float64 `json:"logit_band_low"`
	LogitBandHigh float64 `json:"logit_band_high"`
}

type verifyResponse struct {
	OK         bool    `json:"ok"`
	TriggerAcc float64 `json:"trigger_acc"`
	FeatDist   float64 `json:"feat_dist"`
	LogitStat  float64 `json:"logit_stat"`
	LatencyMS  uint64  `json:"latency_ms"`
}

func (v *httpVerifier) Verify(key *externalapi.VerificationKey, timeout time.Duration) (
	*externalapi.MLVerdict, error) {

	requestBody, err := json.Marshal(&verifyRequest{
		Aid:          key.ArtefactID.String(),
		SchemeID:     key.SchemeID,
		EvidenceHash: key.EvidenceHash.String(),
		WmProfile: wmProfileJSON{
			TauInput:      key.WmProfile.TauInput,
			TauFeat:       key.WmProfile.TauFeat,
			LogitBandLow:  key.WmProfile.LogitBandLow,
			LogitBandHigh: key.WmProfile.LogitBandHigh,
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	endpoint := v.baseURL + "/verify"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		bytes.NewReader(requestBody))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := v.client.Do(request)
	if err != nil {
		return nil, classifyTransportError(endpoint, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, model.NewVerifierError(model.VerifierErrorProtocol,
			fmt.Sprintf("verification service returned HTTP status %d", response.StatusCode))
	}

	var body verifyResponse
	err = json.NewDecoder(response.Body).Decode(&body)
	if err != nil {
		return nil, model.NewVerifierError(model.VerifierErrorProtocol,
			fmt.Sprintf("malformed verdict from the verification service: %s", err))
	}

	log.Tracef("Verified artefact %s: ok=%t trigger_acc=%f feat_dist=%f logit_stat=%f "+
		"latency=%dms", key.ArtefactID, body.OK, body.TriggerAcc, body.FeatDist,
		body.LogitStat, body.LatencyMS)

	return &externalapi.MLVerdict{
		OK:         body.OK,
		TriggerAcc: body.TriggerAcc,
		FeatDist:   body.FeatDist,
		LogitStat:  body.LogitStat,
		LatencyMS:  body.LatencyMS,
	}, nil
}

// classifyTransportError folds an http.Client error onto the verifier
// error taxonomy. Context deadlines and url.Error timeouts are timeouts,
// everything else failed in transport.
func classifyTransportError(endpoint string, err error) *model.VerifierError {
	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &urlErr) && urlErr.Timeout()) {
		return model.NewVerifierError(model.VerifierErrorTimeout,
			fmt.Sprintf("POST %s timed out: %s", endpoint, err))
	}
	return model.NewVerifierError(model.VerifierErrorTransport,
		fmt.Sprintf("POST %s failed: %s", endpoint, err))
}
