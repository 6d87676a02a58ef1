package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/edumart/edumart/internal/config"
	"github.com/edumart/edumart/internal/domain/model"
	testhelpers "github.com/edumart/edumart/internal/test"
	"github.com/edumart/edumart/internal/worker"
)

func newTestReconciler() *worker.Reconciler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewReconciler(&testhelpers.PlatformFacadeStub{}, 10*time.Millisecond, time.Minute, 1, 1, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewReconcilerUsesConfig(t *testing.T) {
	rec := newReconciler(workerParams{
		Facade: &PlatformFacade{},
		Config: &config.Config{
			ReconcileInterval: 15 * time.Second,
			PendingMaxAge:     time.Hour,
			ReconcileBatch:    3,
			WorkerPoolSize:    4,
		},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if rec == nil {
		t.Fatal("expected reconciler instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := testhelpers.NewShutdownerStub()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	reconciler := newTestReconciler()
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Ctx:        context.Background(),
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Last()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := testhelpers.NewShutdownerStub()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}
	reconciler := newTestReconciler()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Ctx:        context.Background(),
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Last()
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestRegisterLifecycleWorkerOutlivesStartPhase(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var polls atomic.Int64
	facade := &testhelpers.PlatformFacadeStub{StalePurchasesFn: func(context.Context, time.Duration, int) ([]model.Purchase, error) {
		polls.Add(1)
		return nil, nil
	}}
	reconciler := worker.NewReconciler(facade, 5*time.Millisecond, time.Minute, 1, 1, logger)

	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(
			func() context.Context { return context.Background() },
			func() *slog.Logger { return logger },
			func() *http.Server { return &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()} },
			func() *worker.Reconciler { return reconciler },
			func() *config.Config { return &config.Config{ShutdownTimeout: time.Second} },
		),
		fx.Invoke(registerLifecycle),
	)
	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// fx cancels the hook context as soon as the start phase ends; the
	// sweep must keep polling regardless.
	baseline := polls.Load()
	deadline := time.After(2 * time.Second)
	for polls.Load() <= baseline {
		select {
		case <-deadline:
			t.Fatal("expected reconciler to keep polling after the start phase")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if err := fxApp.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
