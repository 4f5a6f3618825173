package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/harborwatch/agent/internal/collector"
	"github.com/harborwatch/agent/internal/config"
	"github.com/harborwatch/agent/internal/rate"
	"github.com/harborwatch/agent/internal/scheduler"
	"github.com/harborwatch/agent/internal/transmitter"
)

func main() {
	agentConfig, err := config.NewAgentConfig(os.Args[1:])
	if err != nil {
		log.Fatal("Failed to parse configuration: ", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	registry := collector.NewRegistry()
	rates := rate.NewEngine()
	sender := transmitter.New(agentConfig.Address, agentConfig.Key, logger)
	sched := scheduler.New(agentConfig, registry, rates, sender, logger)

	if agentConfig.SelfTest {
		if err := sched.SelfTest(os.Stdout); err != nil {
			logger.Errorw("self-test failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Run(ctx)
	logger.Infow("shutting down")
}
