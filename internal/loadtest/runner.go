package loadtest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/neighborfit/pkg/logger"
)

// Runner configuration constants.
const (
	WorkerChannelMultiplier = 2
	PercentageMultiplier    = 100
	directoryPermission     = 0750
	filePermission          = 0600
)

// ErrRunFailed is returned when profiles or rankings failed, or a ranking was invalid.
var ErrRunFailed = errors.New("load test failed")

// Run executes the complete load test and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("loadtest")

	log.Info(ctx, "starting neighborfit load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", config.Users),
		logger.Int("limit", config.Limit),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
	)

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := client.do(ctx, http.MethodGet, config.BaseURL+"/healthz", nil, nil); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate profiles
	users, err := generateProfiles(ctx, config, stats)
	if err != nil {
		return stats, fmt.Errorf("profile generation failed: %w", err)
	}

	// Step 3: Store profiles concurrently
	stats.ProfilesStored, stats.ProfilesFailed = runPool(ctx, config.Workers, len(users), func(ctx context.Context, i int) error {
		u := users[i]
		err := client.do(ctx, http.MethodPut, config.BaseURL+"/preferences/"+url.PathEscape(u.UserID), u.Profile, nil)
		if err != nil && config.Verbose {
			log.Warn(ctx, "failed to store profile", logger.String("userID", u.UserID), logger.Error(err))
		}
		return err
	})

	// Step 4: Calculate and verify matches concurrently
	var violations int64
	stats.RankingsRetrieved, stats.RankingsFailed = runPool(ctx, config.Workers, len(users), func(ctx context.Context, i int) error {
		u := users[i]
		target := config.BaseURL + "/matches/" + url.PathEscape(u.UserID) + "/calculate?limit=" + strconv.Itoa(config.Limit)
		var resp matchesResponse
		if err := client.do(ctx, http.MethodPost, target, nil, &resp); err != nil {
			if config.Verbose {
				log.Warn(ctx, "failed to calculate matches", logger.String("userID", u.UserID), logger.Error(err))
			}
			return err
		}
		err := verifyRanking(resp.Matches, config.Limit)
		if err == nil {
			err = verifyAlgorithm(resp.Algorithm)
		}
		if err != nil {
			atomic.AddInt64(&violations, 1)
			log.Error(ctx, "invalid ranking", logger.String("userID", u.UserID), logger.Error(err))
		}
		return nil
	})
	stats.Violations = int(atomic.LoadInt64(&violations))

	// Step 5: Save profiles to file
	if config.OutputFile != "" {
		if err := saveProfilesToFile(ctx, config.OutputFile, users); err != nil {
			log.Warn(ctx, "failed to save profiles to file", logger.Error(err))
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.ProfilesFailed > 0 || stats.RankingsFailed > 0 || stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d profile failures, %d ranking failures, %d violations",
			ErrRunFailed, stats.ProfilesFailed, stats.RankingsFailed, stats.Violations)
	}
	log.Info(ctx, "load test completed successfully")
	return stats, nil
}

// saveProfilesToFile writes the generated profiles as a JSON array.
func saveProfilesToFile(ctx context.Context, filename string, users []userProfile) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	logger.Get().Info(ctx, "profiles saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, rankingsPerSecond float64

	if stats.ProfilesGenerated > 0 {
		successRate = float64(stats.RankingsRetrieved) / float64(stats.ProfilesGenerated) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		rankingsPerSecond = float64(stats.RankingsRetrieved) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("profilesStored", stats.ProfilesStored),
		logger.Int("profilesFailed", stats.ProfilesFailed),
		logger.Int("rankingsRetrieved", stats.RankingsRetrieved),
		logger.Int("rankingsFailed", stats.RankingsFailed),
		logger.Int("violations", stats.Violations),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("rankingsPerSecond", rankingsPerSecond),
	)
}
