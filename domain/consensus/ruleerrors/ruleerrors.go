package ruleerrors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

// ErrorCode identifies a kind of block-validation rule violation.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrBlockSize indicates the serialized block size exceeds the
	// configured maximum.
	ErrBlockSize ErrorCode = iota

	// ErrTooManyTransactions indicates the block carries more
	// transactions than the configured maximum.
	ErrTooManyTransactions

	// ErrEmptyBlock indicates the block carries no transactions while
	// empty blocks are not allowed.
	ErrEmptyBlock

	// ErrBadTransactionRoot indicates the header's transaction root does
	// not commit to the block's transaction sequence.
	ErrBadTransactionRoot

	// ErrBadHeight indicates the header height is not exactly one more
	// than the current tip's height.
	ErrBadHeight

	// ErrBadParent indicates the header's parent hash does not match the
	// current tip.
	ErrBadParent

	// ErrTimeTooOld indicates the header timestamp is less than the
	// parent block's timestamp.
	ErrTimeTooOld

	// ErrDuplicateArtefactInBlock indicates two or more RegisterModel
	// transactions in the block name the same artefact ID.
	ErrDuplicateArtefactInBlock

	// ErrDuplicateArtefactRegistration indicates a RegisterModel
	// transaction names an artefact ID that is already registered
	// on-chain.
	ErrDuplicateArtefactRegistration

	// ErrTooManyArtefacts indicates the number of distinct verification
	// keys in the block exceeds the per-block artefact cap.
	ErrTooManyArtefacts
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrBlockSize:                     "ErrBlockSize",
	ErrTooManyTransactions:           "ErrTooManyTransactions",
	ErrEmptyBlock:                    "ErrEmptyBlock",
	ErrBadTransactionRoot:            "ErrBadTransactionRoot",
	ErrBadHeight:                     "ErrBadHeight",
	ErrBadParent:                     "ErrBadParent",
	ErrTimeTooOld:                    "ErrTimeTooOld",
	ErrDuplicateArtefactInBlock:      "ErrDuplicateArtefactInBlock",
	ErrDuplicateArtefactRegistration: "ErrDuplicateArtefactRegistration",
	ErrTooManyArtefacts:              "ErrTooManyArtefacts",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a structural rule violation. It is used to indicate
// that processing of a block failed due to one of the many validation
// rules. It has full support for errors.Is and errors.As, so the caller
// can ascertain the specific reason for the failure.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// NewRuleError creates a RuleError given a set of arguments.
func NewRuleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// Errorf creates a RuleError with a formatted description.
func Errorf(c ErrorCode, format string, args ...interface{}) RuleError {
	return NewRuleError(c, fmt.Sprintf(format, args...))
}

// AsRuleError unwraps err into a RuleError if it is one.
func AsRuleError(err error) (RuleError, bool) {
	var ruleErr RuleError
	if ok := errors.As(err, &ruleErr); ok {
		return ruleErr, true
	}
	return RuleError{}, false
}

// AuthenticityError indicates that one or more artefacts in a block failed
// the ML-authenticity check. It carries every failing verification key so
// a caller can withdraw or fix those registrations selectively.
type AuthenticityError struct {
	FailingKeys []*externalapi.VerificationKey
}

// Error satisfies the error interface.
func (e AuthenticityError) Error() string {
	ids := make([]string, len(e.FailingKeys))
	for i, key := range e.FailingKeys {
		ids[i] = key.ArtefactID.String()
	}
	return fmt.Sprintf("authenticity check failed for artefacts: %s", strings.Join(ids, ", "))
}

// NewAuthenticityError creates an AuthenticityError over the given keys.
func NewAuthenticityError(failingKeys []*externalapi.VerificationKey) AuthenticityError {
	return AuthenticityError{FailingKeys: failingKeys}
}

// AsAuthenticityError unwraps err into an AuthenticityError if it is one.
func AsAuthenticityError(err error) (AuthenticityError, bool) {
	var authErr AuthenticityError
	if ok := errors.As(err, &authErr); ok {
		return authErr, true
	}
	return AuthenticityError{}, false
}
