package main

import (
	"clinic-staffing/config"
	customerrors "clinic-staffing/errors"
	"clinic-staffing/forecast"
	"clinic-staffing/formatter"
	"clinic-staffing/logger"
	"clinic-staffing/metrics"
	"clinic-staffing/models"
	"clinic-staffing/planner"
	"clinic-staffing/server"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Define flags
	practitioner := flag.String("type", "", "Practitioner type: umum|gigi (required unless -http-addr is set)")
	month := flag.String("month", "", "Month to plan: 1-12 or a month name such as Januari (required unless -http-addr is set)")
	year := flag.Int("year", cfg.Data.ForecastYear, "Forecast year")
	manual := flag.String("manual", "", "Manually entered monthly patient count")
	format := flag.String("format", "text", "Output format: text|json|csv")
	dataDir := flag.String("data-dir", cfg.Data.Dir, "Directory holding forecast_dokter_*.csv and data_dokter_*.csv")
	httpAddr := flag.String("http-addr", "", "Serve the staffing API on this address instead of printing a report (e.g., :8080)")
	metricsAddr := flag.String("metrics-addr", cfg.App.MetricsAddress, "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	log, err := logger.NewZapLogger(cfg)
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	p := planner.New(forecast.NewFileProvider(*dataDir), log, cfg.Data.ComparisonYear)

	if *httpAddr != "" {
		cfg.App.Address = *httpAddr
		serve(cfg, p, log)
		return
	}

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			log.Info("metrics server listening", zap.String("addr", *metricsAddr))
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	// Validate required flags
	if *practitioner == "" || *month == "" {
		fmt.Println("Error: -type and -month flags are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	sel, err := selection(*practitioner, *month, *year, *manual)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	report, err := p.Plan(context.Background(), sel)
	if err != nil {
		report, err = manualOnly(p, sel, err)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(report))
	case "csv":
		fmt.Print(formatter.FormatCSV(report))
	default: // "text"
		fmt.Print(formatter.FormatText(report))
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "clinic_staffing"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			log.Error("pushing to Pushgateway failed", zap.Error(err))
		} else {
			log.Info("metrics pushed to Pushgateway", zap.String("url", *pushGateway))
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Fprintln(os.Stderr, "\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		time.Sleep(100 * time.Millisecond)
	}
}

func selection(practitioner, month string, year int, manual string) (models.Selection, error) {
	t, err := models.ParsePractitionerType(practitioner)
	if err != nil {
		return models.Selection{}, err
	}
	m, err := models.ParseMonth(month)
	if err != nil {
		return models.Selection{}, err
	}

	sel := models.Selection{Type: t, Period: models.Period{Year: year, Month: m}}
	if manual != "" {
		n, err := strconv.Atoi(manual)
		if err != nil {
			return models.Selection{}, fmt.Errorf("%w: manual patient count %q is not a number", customerrors.ErrInvalidInput, manual)
		}
		sel.ManualPatients = &n
	}
	return sel, nil
}

// manualOnly keeps the manual entry usable when the forecast cannot be read.
func manualOnly(p *planner.Planner, sel models.Selection, planErr error) (*models.Report, error) {
	unavailable := errors.Is(planErr, customerrors.ErrForecastUnavailable)
	if !unavailable || sel.ManualPatients == nil {
		return nil, planErr
	}

	result, err := p.Manual(sel.Type, *sel.ManualPatients)
	if err != nil {
		return nil, err
	}
	return &models.Report{
		PractitionerType: sel.Type,
		Period:           sel.Period,
		ForecastError:    planErr.Error(),
		Manual:           &models.ManualEntry{Patients: *sel.ManualPatients, Staffing: result},
	}, nil
}

func serve(cfg *config.Config, p *planner.Planner, log *zap.Logger) {
	h := server.NewHandler(p, log, cfg.Data.ForecastYear)
	srv := &http.Server{
		Addr:    cfg.App.Address,
		Handler: server.NewRouter(cfg, h, log),
	}

	go func() {
		log.Info("staffing API listening", zap.String("addr", cfg.App.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("waiting for pending requests to finish")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(cfg.App.ShutdownTimeout),
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exiting")
}
