package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "hilo"

// Metrics holds every game collector on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	TickDuration prometheus.Histogram
	Ticks        prometheus.Counter
	TickPanics   prometheus.Counter
	Units        prometheus.Gauge
	Sessions     prometheus.Gauge
	Deaths       *prometheus.CounterVec
	Detonations  *prometheus.CounterVec
	Teleports    prometheus.Counter
	Actions      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent running all systems for one tick.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Ticks run by the game loop.",
		}),
		TickPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_panics_total",
			Help:      "Ticks aborted by a recovered panic.",
		}),
		Units: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "units",
			Help:      "Units on the grid after the last tick.",
		}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ssh_sessions",
			Help:      "Open SSH game sessions.",
		}),
		Deaths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actor_deaths_total",
			Help:      "Actors killed, by kind.",
		}, []string{"kind"}),
		Detonations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detonations_total",
			Help:      "Ammo and gasoline detonations, by kind.",
		}, []string{"kind"}),
		Teleports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teleports_total",
			Help:      "Completed teleport arrivals.",
		}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Player commands submitted, by command.",
		}, []string{"command"}),
	}
	m.Registry.MustRegister(
		m.TickDuration, m.Ticks, m.TickPanics, m.Units, m.Sessions,
		m.Deaths, m.Detonations, m.Teleports, m.Actions,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics endpoint listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
