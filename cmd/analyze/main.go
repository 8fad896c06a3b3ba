package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/app"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

const serviceName = "ride-analytics"

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.InitLogger(serviceName, logger.LevelInfo)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		return 1
	}

	log = logger.InitLogger(serviceName, cfg.LogLevel)

	// Printing configuration
	config.PrintConfig(ctx, log, cfg)

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, os.Stdout, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		return 1
	}
	defer application.Close(context.WithoutCancel(ctx))

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(wrap.ErrorCtx(ctx, err), "analysis failed", err)
		return 1
	}

	return 0
}
