package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/neighborfit/internal/loadtest"
)

// Default configuration constants.
const (
	defaultUsers       = 1000
	defaultLimit       = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		users      = flag.Int("users", defaultUsers, "Number of users to generate")
		limit      = flag.Int("limit", defaultLimit, "Matches requested per user")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write the generated profiles to this JSON file")
		logFile    = flag.String("log", "", "Log file (default: loadtest_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Log every failed request")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	closer, err := loadtest.SetupLogging(*logFile)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	_, err = loadtest.Run(ctx, &loadtest.Config{
		BaseURL:    *baseURL,
		Users:      *users,
		Limit:      *limit,
		Workers:    max(*workers, 1),
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	})
	cancel()
	_ = closer.Close()

	if err != nil {
		os.Stderr.WriteString("Load test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
