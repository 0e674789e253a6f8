package metrics

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// Metrics holds all Prometheus metrics of the governance client
type Metrics struct {
	registry *prometheus.Registry

	Actions           *prometheus.CounterVec
	ActionLatency     *prometheus.HistogramVec
	Refreshes         *prometheus.CounterVec
	RefreshLatency    prometheus.Histogram
	ProposalCount     prometheus.Gauge
	TreasuryWei       prometheus.Gauge
	Entitlement       prometheus.Gauge
	SessionGeneration prometheus.Gauge
}

// New creates all metrics on a private registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "treb_dao_actions_total",
			Help: "Total number of actions, labeled by kind and outcome",
		}, []string{"kind", "outcome"}),
		ActionLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "treb_dao_action_duration_seconds",
			Help:    "Time from gate check to settled refresh",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		}, []string{"kind"}),
		Refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "treb_dao_refreshes_total",
			Help: "Total number of view refreshes, labeled by outcome",
		}, []string{"outcome"}),
		RefreshLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "treb_dao_refresh_duration_seconds",
			Help:    "Latency of view refreshes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ProposalCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "treb_dao_proposals",
			Help: "Number of proposals in the DAO",
		}),
		TreasuryWei: factory.NewGauge(prometheus.GaugeOpts{
			Name: "treb_dao_treasury_wei",
			Help: "DAO treasury balance in wei",
		}),
		Entitlement: factory.NewGauge(prometheus.GaugeOpts{
			Name: "treb_dao_entitlement",
			Help: "Membership NFTs held by the connected identity",
		}),
		SessionGeneration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "treb_dao_session_generation",
			Help: "Generation of the session the view was refreshed for",
		}),
	}
}

// ObserveAction implements usecase.Metrics
func (m *Metrics) ObserveAction(kind models.ActionKind, outcome string, duration time.Duration) {
	m.Actions.WithLabelValues(string(kind), outcome).Inc()
	if outcome == "ok" {
		m.ActionLatency.WithLabelValues(string(kind)).Observe(duration.Seconds())
	}
}

// ObserveRefresh implements usecase.Metrics
func (m *Metrics) ObserveRefresh(outcome string, duration time.Duration) {
	m.Refreshes.WithLabelValues(outcome).Inc()
	m.RefreshLatency.Observe(duration.Seconds())
}

// SetSnapshot implements usecase.Metrics
func (m *Metrics) SetSnapshot(snapshot *models.ViewSnapshot) {
	if snapshot == nil {
		return
	}
	m.ProposalCount.Set(float64(snapshot.ProposalCount))
	if snapshot.Treasury != nil {
		wei, _ := new(big.Float).SetInt(snapshot.Treasury).Float64()
		m.TreasuryWei.Set(wei)
	}
	m.Entitlement.Set(float64(snapshot.Entitlement))
	m.SessionGeneration.Set(float64(snapshot.Generation))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
