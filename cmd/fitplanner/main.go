package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "fitplanner/internal/adapter/http"
	"fitplanner/internal/adapter/memory"
	"fitplanner/internal/adapter/pdf"
	"fitplanner/internal/app"
	"fitplanner/internal/config"
	"fitplanner/internal/domain"
	"fitplanner/internal/logging"
	"fitplanner/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting fitplanner ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "main config file path")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	})

	ttl, err := cfg.SessionTTLDuration()
	if err != nil {
		log.Fatalf("invalid session ttl: %s", err)
	}

	m := metrics.NewManager("fitplanner", "service", prometheus.DefaultRegisterer)

	store := memory.New(ttl).WithGauge(m.GaugeSessions)
	planSvc := app.NewPlanService(store, domain.GlobalRand{}).WithMetrics(m)
	reportSvc := app.NewReportService(pdf.New()).WithMetrics(m)

	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		metricsHandler = promhttp.Handler()
	} else {
		log.Debugln("metrics endpoint disabled")
	}

	h := adapthttp.New(planSvc, reportSvc, cfg.WebDir).
		WithMetrics(m, metricsHandler).
		WithSessionMaxAge(ttl).
		Handler()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("listening on %s [%s]", srv.Addr, *env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received ...", receivedSig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("graceful shutdown: %s", err)
	}
	log.Infoln("server shut down")
}
