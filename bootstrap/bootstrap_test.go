package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/sypnna/component"
	"github.com/kbukum/sypnna/config"
	"github.com/kbukum/sypnna/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	return m.health
}

type describedComponent struct {
	mockComponent
	desc   component.Description
	routes []component.Route
}

func (m *describedComponent) Describe() component.Description { return m.desc }
func (m *describedComponent) Routes() []component.Route       { return m.routes }

func newTestApp(t *testing.T, opts ...Option) (*App[*testConfig], *bytes.Buffer) {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "sypnna", Version: "1.0.0"}}
	var out bytes.Buffer
	quiet := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "test", io.Discard)
	opts = append([]Option{WithLogger(quiet), WithSummaryOutput(&out)}, opts...)
	app, err := NewApp(cfg, opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app, &out
}

func healthy(name string) component.Health {
	return component.Health{Name: name, Status: component.StatusHealthy}
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Name != "sypnna" || app.Version != "1.0.0" {
		t.Errorf("unexpected name/version %q %q", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults applied, got environment %q", app.Cfg.Environment)
	}
	if app.gracefulTimeout != defaultGracefulTimeout {
		t.Errorf("expected default graceful timeout, got %v", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	_, err := NewApp(&testConfig{})
	if err == nil {
		t.Error("expected error for missing name")
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app, _ := newTestApp(t, WithGracefulTimeout(5*time.Second))
	if app.gracefulTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", app.gracefulTimeout)
	}
}

func TestHooksRunInOrderAndStopOnError(t *testing.T) {
	var order []string
	hooks := []Hook{
		func(ctx context.Context) error { order = append(order, "first"); return nil },
		func(ctx context.Context) error { return fmt.Errorf("boom") },
		func(ctx context.Context) error { order = append(order, "third"); return nil },
	}
	if err := runHooks(context.Background(), hooks); err == nil {
		t.Fatal("expected error from failing hook")
	}
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("expected only the first hook to run, got %v", order)
	}
}

func TestStopHooksRunAllInReverse(t *testing.T) {
	var order []string
	hooks := []Hook{
		func(ctx context.Context) error { order = append(order, "telemetry"); return nil },
		func(ctx context.Context) error { order = append(order, "failing"); return fmt.Errorf("boom") },
		func(ctx context.Context) error { order = append(order, "last"); return nil },
	}
	err := runStopHooks(context.Background(), hooks)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected joined hook error, got %v", err)
	}
	if strings.Join(order, ",") != "last,failing,telemetry" {
		t.Errorf("expected every hook in reverse order, got %v", order)
	}
}

func TestReadyCheck(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("expected no error for empty registry, got %v", err)
	}

	_ = app.RegisterComponent(&mockComponent{name: "media-staging", health: healthy("media-staging")})
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("expected no error for healthy components, got %v", err)
	}

	_ = app.RegisterComponent(&mockComponent{
		name:   "media-extractor",
		health: component.Health{Name: "media-extractor", Status: component.StatusDegraded, Message: "yt-dlp unavailable"},
	})
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "media-extractor=degraded(yt-dlp unavailable)") {
		t.Errorf("expected degraded extractor to be reported, got %v", err)
	}
}

func TestRunLifecycle(t *testing.T) {
	app, out := newTestApp(t)
	comp := &describedComponent{
		mockComponent: mockComponent{name: "http-server", health: healthy("http-server")},
		desc:          component.Description{Name: "HTTP Server", Type: "server", Details: "0.0.0.0:8080", Port: 8080},
		routes:        []component.Route{{Method: "ANY", Path: "/api/generate", Handler: "TranscribeHandler.Generate"}},
	}
	_ = app.RegisterComponent(comp)

	var phases []string
	app.OnStart(func(ctx context.Context) error { phases = append(phases, "start"); return nil })
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		if a.Cfg.Name != "sypnna" {
			t.Errorf("expected typed config in configure callback, got %q", a.Cfg.Name)
		}
		phases = append(phases, "configure")
		return nil
	})
	app.OnReady(func(ctx context.Context) error { phases = append(phases, "ready"); return nil })
	app.OnStop(func(ctx context.Context) error { phases = append(phases, "stop"); return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "start,configure,ready,stop"
	if got := strings.Join(phases, ","); got != want {
		t.Errorf("expected phases %s, got %s", want, got)
	}
	if !comp.started || !comp.stopped {
		t.Errorf("expected component started and stopped, got started=%v stopped=%v", comp.started, comp.stopped)
	}
	for _, s := range []string{"sypnna v1.0.0", "HTTP Server [server]: 0.0.0.0:8080", "/api/generate", "All components healthy (1/1)"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("summary missing %q:\n%s", s, out.String())
		}
	}
}

func TestRunStartFailureStopsStartedComponents(t *testing.T) {
	app, _ := newTestApp(t)
	first := &mockComponent{name: "media-staging", health: healthy("media-staging")}
	second := &mockComponent{name: "transcriber", startErr: fmt.Errorf("unknown provider")}
	_ = app.RegisterComponent(first)
	_ = app.RegisterComponent(second)

	err := app.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("expected start error, got %v", err)
	}
	if !first.stopped {
		t.Error("expected the started component to be stopped")
	}
	if second.stopped {
		t.Error("expected the failed component not to be stopped")
	}
}

func TestRunReportsStopErrors(t *testing.T) {
	app, _ := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "http-server", stopErr: fmt.Errorf("stop failed"), health: healthy("http-server")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err == nil {
		t.Error("expected error from component stop failure")
	}
}

func TestWaitForSignalContextCancellation(t *testing.T) {
	app, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if sig := app.WaitForSignal(ctx); sig != nil {
		t.Errorf("expected nil signal for context cancellation, got %v", sig)
	}
}

func TestSummaryUnhealthyComponents(t *testing.T) {
	var out bytes.Buffer
	s := NewSummary("sypnna", "1.0.0")
	s.SetOutput(&out)

	registry := component.NewRegistry(logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "test", io.Discard))
	_ = registry.Register(&mockComponent{
		name:   "media-staging",
		health: component.Health{Name: "media-staging", Status: component.StatusUnhealthy, Message: "permission denied"},
	})
	s.DisplaySummary(context.Background(), registry)

	if !strings.Contains(out.String(), "❌ media-staging: unhealthy (permission denied)") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "(0/1 healthy)") {
		t.Errorf("expected health tally:\n%s", out.String())
	}
}

func TestTreePrefix(t *testing.T) {
	if p := treePrefix(2, 3); p != "└──" {
		t.Errorf("expected '└──' for last item, got %q", p)
	}
	if p := treePrefix(0, 3); p != "├──" {
		t.Errorf("expected '├──' for non-last item, got %q", p)
	}
}
