package model

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

// MLVerifier is the abstract watermark-verification capability consumed by
// the ML-authenticity validation stage. A concrete implementation performs
// a remote call; the contract only requires this signature and the
// VerifierError taxonomy.
type MLVerifier interface {
	// Verify evaluates watermark authenticity for one artefact. A failed
	// call returns a *VerifierError; a reachable verifier that judged the
	// artefact inauthentic returns a verdict with OK set to false, not an
	// error.
	Verify(key *externalapi.VerificationKey, timeout time.Duration) (*externalapi.MLVerdict, error)
}

// VerifierErrorCode classifies the ways a verification call can fail
// without producing a verdict.
type VerifierErrorCode int

// The allowed verifier error codes
const (
	// VerifierErrorTimeout means the call did not complete within its
	// per-call timeout.
	VerifierErrorTimeout VerifierErrorCode = iota

	// VerifierErrorTransport means the verifier could not be reached or
	// the connection broke mid-call.
	VerifierErrorTransport

	// VerifierErrorProtocol means the verifier responded with something
	// that is not a well-formed verdict.
	VerifierErrorProtocol
)

var verifierErrorCodeStrings = map[VerifierErrorCode]string{
	VerifierErrorTimeout:   "Timeout",
	VerifierErrorTransport: "Transport",
	VerifierErrorProtocol:  "Protocol",
}

// String returns the VerifierErrorCode as a human-readable name.
func (code VerifierErrorCode) String() string {
	if s, ok := verifierErrorCodeStrings[code]; ok {
		return s
	}
	return fmt.Sprintf("Unknown VerifierErrorCode (%d)", int(code))
}

// VerifierError identifies a failed verification call. It is treated as a
// failed authenticity check for consensus purposes, but is observed
// distinctly from a genuine negative verdict so operators can tell
// "service down" from "artefact rejected".
type VerifierError struct {
	Code        VerifierErrorCode
	Description string
}

// Error satisfies the error interface.
func (e VerifierError) Error() string {
	return fmt.Sprintf("verifier %s error: %s", e.Code, e.Description)
}

// NewVerifierError returns a new VerifierError with the given code and
// description.
func NewVerifierError(code VerifierErrorCode, description string) *VerifierError {
	return &VerifierError{Code: code, Description: description}
}

// AsVerifierError unwraps err into a *VerifierError if it is one.
func AsVerifierError(err error) (*VerifierError, bool) {
	var verifierError *VerifierError
	if ok := errors.As(err, &verifierError); ok {
		return verifierError, true
	}
	return nil, false
}
