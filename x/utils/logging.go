package utils

import (
	"context"
	"time"

	"github.com/iov-one/onesig"
)

// Logging is a decorator to log messages as they pass through.
type Logging struct{}

var _ onesig.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx context.Context, store onesig.KVStore, tx onesig.Tx, next onesig.Checker) (*onesig.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, onesig.GetPath(tx), resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx context.Context, store onesig.KVStore, tx onesig.Tx, next onesig.Deliverer) (*onesig.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, onesig.GetPath(tx), resLog, err, false)
	return res, err
}

func logDuration(ctx context.Context, start time.Time, path, msg string, err error, lowPrio bool) {
	logger := onesig.GetLogger(ctx).With(
		"path", path,
		"duration", time.Since(start)/time.Microsecond,
	)

	// The entry is emitted even with an empty message, the key values are
	// what matters.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
