// Command sypnna serves POST /api/generate: it turns a video or audio URL
// into a plain-text transcript through the configured provider.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/kbukum/sypnna/api"
	"github.com/kbukum/sypnna/bootstrap"
	"github.com/kbukum/sypnna/config"
	"github.com/kbukum/sypnna/media"
	"github.com/kbukum/sypnna/observability"
	"github.com/kbukum/sypnna/server"
	"github.com/kbukum/sypnna/transcriber"
	"github.com/kbukum/sypnna/transcription"
	"github.com/kbukum/sypnna/transcription/assemblyai"
	"github.com/kbukum/sypnna/transcription/supadata"
	"github.com/kbukum/sypnna/transcription/whisper"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return err
	}
	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}

	shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	app.OnStop(bootstrap.Hook(shutdownTelemetry))
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		a.Summary.TrackInfrastructure(telemetrySummary(a.Cfg.Observability))
		return nil
	})

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return err
	}

	locator, extractor, err := media.NewLocator(cfg.Media)
	if err != nil {
		return fmt.Errorf("media locator: %w", err)
	}
	stager := media.NewStager(cfg.Media.StagingDir, cfg.Media.MaxSizeBytes())

	svc := transcriber.NewService(cfg.Transcription, newProviderRegistry(), locator, stager,
		transcriber.WithMetrics(metrics),
		transcriber.WithFetchTimeout(cfg.Media.FetchTimeout),
	)

	srv := server.New(cfg.Server, app.Logger)
	srv.RegisterDefaultEndpoints(cfg.Name, app.Components.HealthAll, map[string]string{
		"provider":  cfg.Transcription.Provider,
		"extractor": strconv.FormatBool(extractor != nil),
	})
	api.NewTranscribeHandler(svc).Register(srv.GinEngine())

	// Registration order is start order; the server goes last so no request
	// arrives before staging is ready.
	if err := app.RegisterComponent(media.NewStagingComponent(stager, app.Logger)); err != nil {
		return err
	}
	if extractor != nil {
		if err := app.RegisterComponent(media.NewExtractorComponent(extractor, app.Logger)); err != nil {
			return err
		}
	}
	if err := app.RegisterComponent(transcriber.NewComponent(svc)); err != nil {
		return err
	}
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	return app.Run(ctx)
}

// newProviderRegistry registers every built-in backend. The active one is
// picked by transcription.provider.
func newProviderRegistry() *transcription.Registry {
	registry := transcription.NewRegistry()
	registry.RegisterFactory(supadata.ProviderName, supadata.Factory())
	registry.RegisterFactory(assemblyai.ProviderName, assemblyai.Factory())
	registry.RegisterFactory(whisper.ProviderName, whisper.Factory())
	return registry
}

// telemetrySummary describes the OTLP export for the startup summary.
func telemetrySummary(cfg observability.Config) bootstrap.InfrastructureInfo {
	info := bootstrap.InfrastructureInfo{Name: "Telemetry", Type: "otlp", Details: "disabled"}
	if cfg.Enabled {
		info.Details = fmt.Sprintf("%s sample_rate=%g", cfg.Endpoint, cfg.SampleRate)
	}
	return info
}
