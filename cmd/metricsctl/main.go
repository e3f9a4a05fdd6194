package main

import (
	"context"
	"os"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
)

var version = "dev"

func main() {
	log := logger.New(logger.Options{ServiceName: "metricsctl", Format: "console", Output: os.Stderr})
	if err := newRootCmd().Execute(); err != nil {
		log.Error(context.Background(), "command failed", err)
		os.Exit(1)
	}
}
