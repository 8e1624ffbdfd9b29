// Command loadtest drives HTTP GET load against the n11 search module and
// prints a per-task summary.
//
// Run with defaults (1 user, 30 seconds):
//
//	loadtest
//
// Run 5 users at 20 req/s for two minutes:
//
//	loadtest -users 5 -rps 20 -duration 2m
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/ternarybob/arbor"

	"github.com/Awaveform/insider-one-assessment/internal/common"
	"github.com/Awaveform/insider-one-assessment/internal/loadgen"
)

var (
	configFile  = flag.String("config", "", "Configuration file path (TOML)")
	users       = flag.Int("users", 0, "Number of simulated users (overrides config)")
	duration    = flag.Duration("duration", 0, "Run duration, e.g. 30s or 2m (overrides config)")
	rps         = flag.Float64("rps", 0, "Requests per second across all users (overrides config)")
	baseURL     = flag.String("base-url", "", "Target base URL (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("loadtest version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	config, err := common.LoadFromFiles(*configFile)
	if err != nil {
		arbor.NewLogger().Fatal().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	// CLI flags take precedence over file and environment configuration.
	if *users > 0 {
		config.LoadTest.Users = *users
	}
	if *duration > 0 {
		config.LoadTest.Duration = duration.String()
	}
	if *rps > 0 {
		config.LoadTest.RPS = *rps
	}
	if *baseURL != "" {
		config.LoadTest.BaseURL = *baseURL
	}
	if err := config.Validate(); err != nil {
		arbor.NewLogger().Fatal().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	logger := common.SetupLogger(config)
	common.PrintBanner("loadtest")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := loadgen.NewRunner(config.LoadTest, config.LoadTestDuration())
	report, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Load test failed")
		os.Exit(1)
	}

	printSummary(report)

	if report.TotalFailures() > 0 {
		os.Exit(1)
	}
}

// printSummary renders the per-task aggregates as a colorized table.
func printSummary(report *loadgen.Report) {
	header := color.New(color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	fmt.Println()
	header.Printf("%-42s %9s %9s %9s %11s %11s %11s\n",
		"Task", "Requests", "Failures", "403s", "Min", "Avg", "Max")

	for _, stats := range report.Tasks() {
		line := fmt.Sprintf("%-42s %9d %9d %9d %11s %11s %11s",
			stats.Name, stats.Requests, stats.Failures, stats.BotBlocked,
			stats.Min.Round(time.Millisecond),
			stats.Avg().Round(time.Millisecond),
			stats.Max.Round(time.Millisecond))
		if stats.Failures > 0 {
			bad.Println(line)
		} else {
			fmt.Println(line)
		}
	}

	fmt.Println()
	total := report.TotalRequests()
	failures := report.TotalFailures()
	elapsed := report.Duration().Round(time.Millisecond)
	if failures == 0 {
		good.Printf("%d requests in %s, no failures\n", total, elapsed)
	} else {
		bad.Printf("%d requests in %s, %d failed\n", total, elapsed, failures)
	}
}
