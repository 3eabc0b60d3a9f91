package loadtest

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/neighborfit/pkg/logger"
)

// SetupLogging sends log output to both the console and a file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		logFile = "loadtest_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.InitWithOptions(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	os.Stdout.WriteString(`neighborfit load test
=====================

Generates random preference profiles, stores them, calculates matches for every
user concurrently and checks each ranking it gets back.

Usage:
  go run ./cmd/loadtest [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -users int
        Number of users to generate (default 1000)
  -limit int
        Matches requested per user (default 10)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Write the generated profiles to this JSON file
  -log string
        Log file (default: loadtest_TIMESTAMP.log)
  -verbose
        Log every failed request
  -help
        Show this help message

Examples:
  go run ./cmd/loadtest -users 5000 -workers 16
  go run ./cmd/loadtest -url http://localhost:9090 -limit 20 -verbose
`)
}
