package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apiestimate "github.com/tallerix/scheduling/api/estimate"
	"github.com/tallerix/scheduling/config"
	"github.com/tallerix/scheduling/core/estimate"
	coremetrics "github.com/tallerix/scheduling/core/metrics"
	"github.com/tallerix/scheduling/core/recalc"
	"github.com/tallerix/scheduling/core/workload"
	"github.com/tallerix/scheduling/infra/logger"
	"github.com/tallerix/scheduling/infra/metrics"
	"github.com/tallerix/scheduling/infra/mqtt"
	"github.com/tallerix/scheduling/infra/sources"
)

// Service wires the recalculator to the MQTT trigger/publish pair, the
// metric sinks and the estimate API.
type Service struct {
	Recalc    *recalc.Recalculator
	publisher mqtt.EstimatePublisher
	log       logger.Logger
	cfg       *config.Config
}

// New creates a Service from the configuration. Nil schedule and workload
// collaborators default to empty in-memory sources, so every technician
// resolves to the default calendar with zero backlog.
func New(cfg *config.Config, schedules estimate.ScheduleSource, workloads workload.Source) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	if schedules == nil {
		schedules = sources.NewStaticSchedules(nil)
	}
	if workloads == nil {
		workloads = sources.NewStaticWorkloads(nil)
	}

	planner := &estimate.Planner{
		Estimator:       estimate.New(logger.New("estimator"), cfg.Engine.SharedConcurrencyCap),
		Schedules:       schedules,
		Workloads:       workloads,
		WorkloadTimeout: time.Duration(cfg.Engine.WorkloadTimeoutSeconds) * time.Second,
		Log:             logg,
	}
	rec := recalc.New(planner, sink, logg, time.Duration(cfg.Engine.DebounceMS)*time.Millisecond)

	return &Service{Recalc: rec, log: logg, cfg: cfg}, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	client, err := mqtt.NewPahoClient(s.cfg.MQTT, func(ev mqtt.OrderEvent) {
		createdAt := ev.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		s.Recalc.Submit(recalc.Request{
			OrderID:      ev.OrderID,
			TechnicianID: ev.TechnicianID,
			Items:        ev.Items,
			Support:      ev.Support,
			CreatedAt:    createdAt,
		})
	})
	if err != nil {
		return fmt.Errorf("mqtt client: %w", err)
	}
	defer client.Close()
	s.publisher = client

	updates := s.Recalc.Subscribe()
	go s.publishLoop(ctx, updates)

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.cfg.API.Enabled {
		go func() {
			if err := s.serveAPI(ctx); err != nil {
				s.log.Errorf("estimate api: %v", err)
			}
		}()
	}

	<-ctx.Done()
	return nil
}

// publishLoop forwards applied estimates to the estimates topic.
func (s *Service) publishLoop(ctx context.Context, updates <-chan recalc.Update) {
	defer s.Recalc.Unsubscribe(updates)
	for {
		select {
		case <-ctx.Done():
			return
		case up, ok := <-updates:
			if !ok {
				return
			}
			if up.Err != nil {
				s.log.Warnf("estimate for order %s failed, keeping last good result: %v", up.OrderID, up.Err)
				continue
			}
			if err := s.publisher.PublishEstimate(up.OrderID, up.Estimate); err != nil {
				s.log.Errorf("publish estimate for %s: %v", up.OrderID, err)
			}
		}
	}
}

func (s *Service) serveAPI(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/api/estimates", apiestimate.NewHandler(s.Recalc, s.cfg.API.Token))
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.Recalc.Close()
	return nil
}
