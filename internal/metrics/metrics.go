// Package metrics reports sync runs to a Prometheus Pushgateway. A batch
// job has no scrape endpoint, so the registry is pushed once at the end of
// each run. With no gateway configured the recorder is a no-op.
package metrics

import (
	"fmt"

	"github.com/BartekS5/gamsync/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder receives the summary of a finished run.
type Recorder interface {
	ObserveRun(s *models.RunSummary)
	Flush() error
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(*models.RunSummary) {}
func (nopRecorder) Flush() error                  { return nil }

// Nop returns a Recorder that drops everything.
func Nop() Recorder { return nopRecorder{} }

// PushRecorder collects run metrics in a private registry and pushes them
// to the gateway under the given job name.
type PushRecorder struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	records     *prometheus.CounterVec
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// New returns a PushRecorder, or a no-op Recorder when gatewayURL is empty.
func New(jobName, gatewayURL string) (Recorder, error) {
	if gatewayURL == "" {
		return Nop(), nil
	}
	return NewPushRecorder(jobName, gatewayURL)
}

func NewPushRecorder(jobName, gatewayURL string) (*PushRecorder, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("metrics: gateway URL is required")
	}
	if jobName == "" {
		jobName = "gamsync"
	}

	r := &PushRecorder{
		gatewayURL: gatewayURL,
		jobName:    jobName,
		reg:        prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamsync_records_total",
			Help: "Records seen by the last run, by kind (read, upserted, failed).",
		}, []string{"kind"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gamsync_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gamsync_last_success_timestamp_seconds",
			Help: "Unix time of the last run that committed.",
		}),
	}

	for _, c := range []prometheus.Collector{r.records, r.duration, r.lastSuccess} {
		if err := r.reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return r, nil
}

func (r *PushRecorder) ObserveRun(s *models.RunSummary) {
	r.records.WithLabelValues("read").Add(float64(s.Records))
	if s.Result != nil {
		r.records.WithLabelValues("upserted").Add(float64(s.Result.Succeeded))
		r.records.WithLabelValues("failed").Add(float64(s.Result.Failed()))
	}
	r.duration.Set(s.FinishedAt.Sub(s.StartedAt).Seconds())
	if s.Err == nil && !s.DryRun {
		r.lastSuccess.Set(float64(s.FinishedAt.Unix()))
	}
}

// Flush pushes the registry to the Pushgateway.
func (r *PushRecorder) Flush() error {
	return push.New(r.gatewayURL, r.jobName).
		Gatherer(r.reg).
		Push()
}
