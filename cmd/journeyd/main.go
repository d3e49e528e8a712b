package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/rentmax/journeyd/internal/api"
	"github.com/rentmax/journeyd/internal/config"
	"github.com/rentmax/journeyd/internal/journey"
	"github.com/rentmax/journeyd/internal/pipeline"
	"github.com/rentmax/journeyd/internal/sink"
	"github.com/rentmax/journeyd/internal/transcript"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel, cfg.LogFile)

	slog.Info("journeyd starting", "port", cfg.Port, "log_folder", cfg.LogFolder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jcfg := journey.DefaultConfig()
	jcfg.BotSender = cfg.BotSender
	jcfg.MarkerPhrase = cfg.MarkerPhrase

	// Sinks are optional; without any, records are only logged.
	var sinks []sink.Sink
	if cfg.AppsScriptURL != "" {
		sinks = append(sinks, sink.NewAppsScript(cfg.AppsScriptURL, slog.Default()))
		slog.Info("apps script sink ready")
	}
	if cfg.NatsURL != "" {
		ns, err := sink.NewNATS(cfg.NatsURL, cfg.NatsToken, cfg.NatsSubject, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer ns.Close()
		sinks = append(sinks, ns)
		slog.Info("NATS sink ready", "url", cfg.NatsURL)
	}
	if len(sinks) == 0 {
		slog.Warn("no sink configured — extracted journeys will only be logged")
	}

	runner := pipeline.NewRunner(pipeline.Config{
		LogDir:       cfg.LogFolder,
		GapThreshold: cfg.SessionGap,
		QuietPeriod:  cfg.QuietPeriod,
		SinkTimeout:  cfg.SinkTimeout,
		Journey:      jcfg,
	}, sinks, slog.Default())

	// Webhook receiver appends inbound chat events to the transcript files
	// the pipeline consumes.
	writer := transcript.NewWriter(cfg.LogFolder)
	srv := api.NewServer(cfg.Port, cfg.WebhookToken, cfg.BotSender, writer, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Single scheduling goroutine: runs can never overlap, which the
	// cursor's unlocked read-modify-write requires.
	go func() {
		runOnce := func() {
			if _, err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("pipeline run failed", "error", err)
			}
		}
		runOnce()

		ticker := time.NewTicker(cfg.RunInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()

	slog.Info("journeyd ready", "port", cfg.Port, "interval", cfg.RunInterval.String())

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("journeyd stopped")
}

func setupLogging(level, file string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if file != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
