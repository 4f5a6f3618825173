package main

import (
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/harborwatch/agent/internal/config"
	"github.com/harborwatch/agent/internal/sink"
)

func main() {
	sinkConfig, err := config.NewSinkConfig(os.Args[1:])
	if err != nil {
		log.Fatal("Failed to parse configuration: ", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	store := sink.NewMemStorage()
	logger.Infow("sink listening", "address", sinkConfig.Address)
	log.Fatal(http.ListenAndServe(sinkConfig.Address, sink.Router(store, logger, sinkConfig.Key)))
}
