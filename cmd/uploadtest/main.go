package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"uploadtest/internal/config"
	"uploadtest/internal/credential"
	"uploadtest/internal/logger"
	"uploadtest/internal/model"
	"uploadtest/internal/otel"
	"uploadtest/internal/sample"
	"uploadtest/internal/tester"
	"uploadtest/internal/uploader"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		log = zap.NewNop()
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.InitIfConfigured(ctx, "uploadtest", log)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	} else {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				log.Debug("tracing shutdown", zap.Error(err))
			}
		}()
	}

	finder := sample.Finder{
		Dir:     cfg.Tester.DownloadsDir,
		MaxSize: config.MaxImageSize,
	}

	var synth sample.Synthesizer = sample.FallbackSynthesizer{Finder: finder}
	if cfg.Tester.Synthesize {
		synth = sample.JPEGSynthesizer{
			Dir:   cfg.Tester.WorkDir,
			Name:  config.PlaceholderName,
			Color: sample.Blue,
		}
	}

	t := tester.New(tester.Options{
		Tokens:       credential.ConsolePrompt{In: os.Stdin, Out: os.Stdout},
		Finder:       finder,
		Synthesizer:  synth,
		Uploader:     uploader.New(config.UploadURL, log),
		Application:  model.TestApplication(),
		DownloadsDir: cfg.Tester.DownloadsDir,
		Out:          os.Stdout,
		Logger:       log,
	})

	// The verdict is printed; the exit status stays 0 either way.
	outcome := t.Run(ctx)
	log.Debug("run finished", zap.Stringer("outcome", outcome))
}
