// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command dvpguard-server runs the reference storage and group
// services described in spec.md §6.2 and §6.3 as two HTTP listeners.
// It is a demonstration transport: a production deployment is free to
// replace it entirely, since the engine package never references it.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxfi/dvpguard/internal/groupservice"
	"github.com/luxfi/dvpguard/internal/storageservice"
	"github.com/luxfi/dvpguard/pkg/log"
	"github.com/luxfi/dvpguard/pkg/metric"
)

var (
	storagePort = flag.Int("storage-port", 8080, "storage service HTTP port")
	groupPort   = flag.Int("group-port", 8081, "group service HTTP port")
	logLevel    = flag.String("log-level", "info", "log level")
)

func main() {
	flag.Parse()

	logger := log.NewWithLevel(*logLevel)
	defer logger.Sync()

	metrics, err := metric.NewMetrics()
	if err != nil {
		fmt.Printf("failed to initialize metrics: %v\n", err)
		os.Exit(1)
	}

	storage := storageservice.New(logger, metrics)
	groups := groupservice.New(logger)

	storageServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *storagePort),
		Handler: storage.Router(),
	}
	groupServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *groupPort),
		Handler: groups.Router(),
	}

	go func() {
		logger.Info(fmt.Sprintf("storage service listening on %s", storageServer.Addr))
		if err := storageServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("storage service error: " + err.Error())
		}
	}()
	go func() {
		logger.Info(fmt.Sprintf("group service listening on %s", groupServer.Addr))
		if err := groupServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("group service error: " + err.Error())
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := storageServer.Shutdown(ctx); err != nil {
		logger.Error("storage service shutdown error: " + err.Error())
	}
	if err := groupServer.Shutdown(ctx); err != nil {
		logger.Error("group service shutdown error: " + err.Error())
	}
}
