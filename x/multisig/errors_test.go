package multisig

import (
	"testing"

	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/weavetest/assert"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestErrorCategory(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"malformed":     {err: errors.Wrap(ErrSignatureDataSize, "x"), want: "malformed"},
		"authorization": {err: ErrInsufficientSignatures, want: "authorization"},
		"temporal":      {err: errors.Wrap(ErrExpiredCommitment, "x"), want: "temporal"},
		"integrity":     {err: errors.Wrap(errors.Wrap(ErrInvalidProof, "x"), "y"), want: "integrity"},
		"state":         {err: ErrReentrancy, want: "state"},
		"capacity":      {err: ErrExecutorsCapacity, want: "capacity"},
		"other":         {err: errors.ErrNotFound, want: "other"},
		"field error":   {err: errors.Field("Signer", ErrInvalidThreshold, ""), want: "authorization"},

		"invalid signer":     {err: ErrInvalidSigner, want: "authorization"},
		"invalid executor":   {err: ErrInvalidExecutor, want: "authorization"},
		"unknown executor":   {err: errors.Wrap(ErrExecutorNotFound, "x"), want: "authorization"},
		"duplicate executor": {err: ErrDuplicateExecutor, want: "authorization"},
		"empty executor set": {err: ErrEmptyExecutorSet, want: "authorization"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, errorCategory(tc.err))
		})
	}
}

func TestRejectCountsErrors(t *testing.T) {
	counter := rejections.WithLabelValues("temporal")
	before := testutil.ToFloat64(counter)

	assert.Nil(t, reject(nil))
	assert.Equal(t, before, testutil.ToFloat64(counter))

	err := reject(errors.Wrap(ErrCommitmentNotExpired, "test"))
	assert.IsErr(t, ErrCommitmentNotExpired, err)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
