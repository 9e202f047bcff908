package onesig

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iov-one/onesig/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	_, err := BlockTime(ctx)
	assert.True(t, errors.ErrHuman.Is(err))

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx = WithBlockTime(ctx, now)
	got, err := BlockTime(ctx)
	assert.NoError(t, err)
	assert.Equal(t, now, got)
	// no reset
	assert.Panics(t, func() { WithBlockTime(ctx, now.Add(time.Hour)) })

	// changing the info modifies the logger, but not the block time
	ctx2 := WithLogInfo(ctx, "instance", "abc")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	got, _ = BlockTime(ctx2)
	assert.Equal(t, now, got)
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := WithBlockTime(context.Background(), now)

	cases := map[string]struct {
		expiry UnixTime
		want   bool
	}{
		"in the past":       {expiry: AsUnixTime(now) - 1, want: true},
		"at the block time": {expiry: AsUnixTime(now), want: false},
		"in the future":     {expiry: AsUnixTime(now) + 1, want: false},
		"zero":              {expiry: 0, want: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := IsExpired(ctx, tc.expiry)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := IsExpired(context.Background(), 1)
	assert.True(t, errors.ErrHuman.Is(err))
}
