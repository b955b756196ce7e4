package main

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zeta1999/quantum-optimization/internal/report"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		workers     int
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a one-layer circuit over a grid of angles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				a.cfg.Sweep.Workers = workers
			}
			if a.cfg.Sweep.Workers < 1 {
				return errors.Errorf("workers %d < 1", a.cfg.Sweep.Workers)
			}
			if metricsAddr != "" {
				stop := serveMetrics(metricsAddr, a.logger)
				defer stop()
			}
			return a.runSweep(cmd)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of grid points evaluated concurrently (config default)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while sweeping")
	return cmd
}

func (a *app) runSweep(cmd *cobra.Command) error {
	p := a.cfg.Problem
	t, err := p.Tree()
	if err != nil {
		return err
	}
	ops, err := p.Operators(t)
	if err != nil {
		return err
	}

	betas := a.cfg.Sweep.Beta.Values()
	gammas := a.cfg.Sweep.Gamma.Values()
	points := make([]report.Point, len(betas)*len(gammas))

	e := a.engine()
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(a.cfg.Sweep.Workers)
	start := time.Now()
	for i, beta := range betas {
		for j, gamma := range gammas {
			idx := i*len(gammas) + j
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := e.Expectation([]float64{beta}, []float64{gamma}, t, ops)
				if err != nil {
					return errors.Wrapf(err, "beta=%g gamma=%g", beta, gamma)
				}
				points[idx] = report.Point{Beta: beta, Gamma: gamma, Value: report.C(v)}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("sweep finished",
		zap.Int("points", len(points)),
		zap.Int("workers", a.cfg.Sweep.Workers),
		zap.Int("cached_gates", a.cache.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	r := a.newResult("sweep")
	r.Betas, r.Gammas = nil, nil
	r.Points = points
	return a.finish(cmd, r)
}

// serveMetrics exposes the default Prometheus registry on addr until the
// returned function is called.
func serveMetrics(addr string, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", zap.Error(err))
		}
	}
}
