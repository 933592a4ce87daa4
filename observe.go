package portage

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// observer emits one log line and a pair of metric samples per client
// call. A nil observer, a nil logger, and a nil registry are all valid;
// each missing sink is skipped.
type observer struct {
	logger *zap.Logger
	calls  *prometheus.CounterVec
	timing *prometheus.HistogramVec
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	o.calls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portage",
		Subsystem: "client",
		Name:      "calls_total",
		Help:      "Client API calls by name and outcome.",
	}, []string{"call", "outcome"})
	o.timing = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portage",
		Subsystem: "client",
		Name:      "call_seconds",
		Help:      "Client API call latency.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"call"})
	if err := adoptOrRegister(reg, &o.calls); err != nil {
		return nil, err
	}
	if err := adoptOrRegister(reg, &o.timing); err != nil {
		return nil, err
	}
	return o, nil
}

// adoptOrRegister registers c, or swaps in the collector reg already
// holds when an identical one exists. Lets several clients share one
// registry.
func adoptOrRegister[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var dup prometheus.AlreadyRegisteredError
	if !errors.As(err, &dup) {
		return fmt.Errorf("portage: register metric: %w", err)
	}
	prior, ok := dup.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("portage: metric registered under a different type: %T", dup.ExistingCollector)
	}
	*c = prior
	return nil
}

func (o *observer) observe(call string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)

	if o.calls != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		o.calls.WithLabelValues(call, outcome).Inc()
		o.timing.WithLabelValues(call).Observe(elapsed.Seconds())
	}

	switch {
	case o.logger == nil:
	case err != nil:
		o.logger.Warn("client call failed",
			zap.String("call", call),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	default:
		o.logger.Debug("client call done",
			zap.String("call", call),
			zap.Duration("elapsed", elapsed),
		)
	}
}
