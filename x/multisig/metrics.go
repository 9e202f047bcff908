package multisig

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commitmentsVerified = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "onesig",
		Subsystem: "multisig",
		Name:      "commitments_verified_total",
		Help:      "Commitments whose signatures were verified.",
	})
	executions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "onesig",
		Subsystem: "multisig",
		Name:      "executions_total",
		Help:      "Actions executed.",
	})
	rejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onesig",
		Subsystem: "multisig",
		Name:      "rejections_total",
		Help:      "Rejected commitments and executions, by error category.",
	}, []string{"category"})
	verificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "onesig",
		Subsystem: "multisig",
		Name:      "signature_verification_seconds",
		Help:      "Time spent verifying a signature blob.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
)

func observeVerification(start time.Time) {
	verificationDuration.Observe(time.Since(start).Seconds())
}

// reject counts the error and returns it unchanged.
func reject(err error) error {
	if err != nil {
		rejections.WithLabelValues(errorCategory(err)).Inc()
	}
	return err
}
