package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/machmark/machmark/pkg/config"
	"github.com/machmark/machmark/pkg/report"
	"github.com/machmark/machmark/pkg/runner"
	"github.com/machmark/machmark/pkg/sysinfo"
)

func main() {
	// Encourage correct rendering of non-ASCII report text.
	if os.Getenv("LANG") == "" {
		os.Setenv("LANG", "C.UTF-8")
	}

	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logger.Warnf("Unknown log level %q, using info", cfg.LogLevel)
	} else {
		logger.SetLevel(level)
	}

	info := sysinfo.Collect()
	logger.Infof("Starting benchmark on %s (%d cores, %.2f GB memory)",
		info.Hostname, info.CPUCount, info.MemoryTotalGB)

	suite, err := runner.New(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to build benchmark suite: %v", err)
	}

	// Ctrl+C aborts between probe phases rather than mid-measurement.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := suite.Run(ctx)
	if err != nil {
		logger.Fatalf("Benchmark failed: %v", err)
	}

	generator := report.NewGenerator(cfg.ReportPath, logger)
	text := generator.Generate(info, results)
	fmt.Print(text)

	if err := generator.Write(text); err != nil {
		logger.Fatalf("Failed to save report: %v", err)
	}
	logger.Infof("Full report saved to %s", generator.Path())
}
