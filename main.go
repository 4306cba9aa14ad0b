package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	config "github.com/insightfinder/tsi-agent/configs"
	"github.com/insightfinder/tsi-agent/insightfinder"
	"github.com/insightfinder/tsi-agent/tsi"
	"github.com/insightfinder/tsi-agent/worker"
)

func main() {
	fmt.Println("Starting TSI Agent...")

	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Agent.LogLevel)

	logrus.Info("TSI Agent starting...")
	logrus.Infof("Environment: %s", cfg.TSI.Environment)
	logrus.Infof("Sampling interval: %d seconds", cfg.InsightFinder.SamplingInterval)

	tsiService := tsi.NewService(cfg.TSI)
	ifService := insightfinder.NewService(cfg.InsightFinder)

	if err := tsiService.Authenticate(context.Background()); err != nil {
		log.Fatalf("Failed to authenticate with Azure TSI: %v", err)
	}
	logrus.Info("Successfully authenticated with Azure TSI")

	w := worker.NewWorker(cfg, tsiService, ifService)

	// Graceful shutdown
	var wg sync.WaitGroup
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.Start(quit)
	}()

	logrus.Info("TSI Agent started successfully")

	<-quit
	logrus.Info("Shutting down TSI Agent...")
	wg.Wait()
	logrus.Info("TSI Agent stopped")
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch level {
	case "DEBUG":
		logrus.SetLevel(logrus.DebugLevel)
	case "INFO":
		logrus.SetLevel(logrus.InfoLevel)
	case "WARN":
		logrus.SetLevel(logrus.WarnLevel)
	case "ERROR":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}
