package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/buildforge/internal/build"
	"git.home.luguber.info/inful/buildforge/internal/config"
	"git.home.luguber.info/inful/buildforge/internal/generator"
	"git.home.luguber.info/inful/buildforge/internal/logfields"
	"git.home.luguber.info/inful/buildforge/internal/metrics"
	"git.home.luguber.info/inful/buildforge/internal/watch"
	prom "github.com/prometheus/client_golang/prometheus"
)

// WatchCmd implements the 'watch' command: regenerate the graph on manifest
// changes, optionally build, until interrupted.
type WatchCmd struct {
	Build        bool          `help:"Also build the entry schemes after each regeneration"`
	RefreshEvery time.Duration `name:"refresh-every" help:"Additionally regenerate at a fixed interval (0 disables)"`
	MetricsAddr  string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Path)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		go serveMetrics(ctx, w.MetricsAddr, reg)
	}

	var notifier *watch.Notifier
	if cfg.Notifications != nil && cfg.Notifications.Enabled {
		notifier, err = watch.NewNotifier(cfg.Notifications)
		if err != nil {
			return err
		}
		defer notifier.Close()
	}

	svc := build.NewService()
	provider := generator.New()
	refresh := func(ctx context.Context) {
		start := time.Now()
		if w.Build {
			result, err := svc.Run(ctx, build.RunRequest{RootPath: root.Path, Generate: true})
			recordRefresh(recorder, notifier, root.Path, result, err)
			return
		}
		// Without --build a refresh only regenerates the graph.
		_, err := provider.Generate(ctx, root.Path)
		result := &build.RunResult{Status: build.RunStatusSuccess, Generated: true, StartTime: start, Duration: time.Since(start)}
		if err != nil {
			result.Status = build.RunStatusFailed
		}
		recordRefresh(recorder, notifier, root.Path, result, err)
	}

	// One refresh up front so the graph is fresh before we start waiting.
	refresh(ctx)

	if w.RefreshEvery > 0 {
		sched, err := watch.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := sched.SchedulePeriodicRefresh(w.RefreshEvery, func() { refresh(ctx) }); err != nil {
			return err
		}
		sched.Start(ctx)
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	watcher, err := watch.NewWatcher(root.Path, refresh)
	if err != nil {
		return err
	}
	defer watcher.Close()

	return watcher.Start(ctx)
}

func recordRefresh(recorder metrics.Recorder, notifier *watch.Notifier, rootPath string, result *build.RunResult, err error) {
	event := watch.RunEvent{RootPath: rootPath, FinishedAt: time.Now()}
	if result != nil {
		event.Status = string(result.Status)
		event.Generated = result.Generated
		recorder.IncRunOutcome(string(result.Status))
		recorder.ObserveRunDuration(result.Duration)
		if result.Generated {
			recorder.IncGeneration()
		}
	}
	if err != nil {
		event.Error = err.Error()
		slog.Error("Refresh failed", logfields.Error(err))
	}
	if notifier != nil {
		notifier.Publish(event)
	}
}

func serveMetrics(ctx context.Context, addr string, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving metrics", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Warn("Metrics server stopped", logfields.Error(err))
	}
}
