package multisig

import (
	"github.com/iov-one/onesig/errors"
)

// x/multisig reserves 1100 ~ 1199.
var (
	// Malformed input.
	ErrSignatureDataSize  = errors.Register(1100, "signature data size mismatch")
	ErrUnknownLeafVersion = errors.Register(1101, "unknown leaf version")
	ErrMalformedAction    = errors.Register(1102, "malformed action")

	// Authorization.
	ErrSignerNotFound          = errors.Register(1110, "signer not found")
	ErrDuplicateSigner         = errors.Register(1111, "duplicate signer")
	ErrInsufficientSignatures  = errors.Register(1112, "insufficient signatures")
	ErrInvalidThreshold        = errors.Register(1113, "invalid threshold")
	ErrThresholdExceedsSigners = errors.Register(1114, "threshold exceeds signers")
	ErrExecutorRequired        = errors.Register(1115, "executor required")
	ErrInvalidSigner           = errors.Register(1116, "invalid signer")
	ErrInvalidExecutor         = errors.Register(1117, "invalid executor")
	ErrExecutorNotFound        = errors.Register(1118, "executor not found")
	ErrDuplicateExecutor       = errors.Register(1119, "duplicate executor")
	ErrEmptyExecutorSet        = errors.Register(1120, "empty executor set")

	// Temporal.
	ErrExpiredCommitment    = errors.Register(1130, "commitment expired")
	ErrCommitmentNotExpired = errors.Register(1131, "commitment not expired")

	// Integrity.
	ErrInvalidProof      = errors.Register(1140, "invalid proof")
	ErrSeedMismatch      = errors.Register(1141, "seed mismatch")
	ErrSignatureRecovery = errors.Register(1142, "failed signature recovery")

	// State consistency.
	ErrExcessiveBalanceDeduction = errors.Register(1150, "excessive balance deduction")
	ErrInvalidAgentOwner         = errors.Register(1151, "invalid agent owner")
	ErrNonEmptyAgentData         = errors.Register(1152, "non empty agent data")
	ErrReentrancy                = errors.Register(1153, "reentrancy")
	ErrStaleState                = errors.Register(1154, "stale state")

	// Capacity.
	ErrSignersCapacity   = errors.Register(1160, "signers capacity exceeded")
	ErrExecutorsCapacity = errors.Register(1161, "executors capacity exceeded")
)

// errorCategory maps an error to the label used by the rejection metric.
func errorCategory(err error) string {
	switch {
	case ErrSignatureDataSize.Is(err), ErrUnknownLeafVersion.Is(err), ErrMalformedAction.Is(err),
		errors.ErrMsg.Is(err), errors.ErrInput.Is(err):
		return "malformed"
	case ErrSignerNotFound.Is(err), ErrDuplicateSigner.Is(err), ErrInsufficientSignatures.Is(err),
		ErrInvalidThreshold.Is(err), ErrThresholdExceedsSigners.Is(err), ErrExecutorRequired.Is(err),
		ErrInvalidSigner.Is(err), ErrInvalidExecutor.Is(err), ErrExecutorNotFound.Is(err),
		ErrDuplicateExecutor.Is(err), ErrEmptyExecutorSet.Is(err), errors.ErrUnauthorized.Is(err):
		return "authorization"
	case ErrExpiredCommitment.Is(err), ErrCommitmentNotExpired.Is(err):
		return "temporal"
	case ErrInvalidProof.Is(err), ErrSeedMismatch.Is(err), ErrSignatureRecovery.Is(err):
		return "integrity"
	case ErrExcessiveBalanceDeduction.Is(err), ErrInvalidAgentOwner.Is(err), ErrNonEmptyAgentData.Is(err),
		ErrReentrancy.Is(err), ErrStaleState.Is(err):
		return "state"
	case ErrSignersCapacity.Is(err), ErrExecutorsCapacity.Is(err):
		return "capacity"
	}
	return "other"
}
