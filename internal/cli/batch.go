package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ppiankov/multisell/internal/model"
	"github.com/ppiankov/multisell/internal/pipeline"
	"github.com/ppiankov/multisell/internal/util"
	"github.com/ppiankov/multisell/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency   int
	batchTimeout  time.Duration
	batchOutput   string
	respectRobots bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Look up many accounts from a file",
	Long: `Batch reads account identifiers from a file (one per line, # for comments),
looks each one up once and prints the results as JSON. Requests to the
community site, profile pages and inventories alike, are spaced by the
configured rate limit. A failed lookup is
reported in the output and the batch moves on; nothing is retried.

Example:
  multisell batch accounts.txt
  multisell batch accounts.txt --concurrency 4 --output results.json
  multisell batch accounts.txt --respect-robots`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "write JSON results to this file instead of stdout")
	batchCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "skip aliases whose profile pages robots.txt disallows")
}

// batchEntry is one line of batch output
type batchEntry struct {
	Input     string           `json:"input"`
	AccountID string           `json:"accountId,omitempty"`
	Cases     []model.CaseItem `json:"cases,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if cmd.Flags().Changed("respect-robots") {
		cfg.RateLimiting.RespectRobots = respectRobots
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	// Every outbound request takes a token, so an alias lookup costs two
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	opts := worker.BatchOptions{
		Workers:      cfg.Concurrency.Workers,
		Limiter:      limiter,
		CommunityURL: cfg.Steam.CommunityURL,
		Verbose:      cfg.Output.Verbose,
	}
	if cfg.RateLimiting.RespectRobots {
		client := &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: &http.Transport{Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)},
		}
		opts.Robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, client, cfg.HTTP.Timeout)
	}

	logf(cfg, "Input file: %s", args[0])
	logf(cfg, "Workers:    %d", cfg.Concurrency.Workers)
	logf(cfg, "Rate:       %.2f req/s", cfg.RateLimiting.RequestsPerSecond)

	processor := worker.NewBatchProcessor(pipeline.NewPipeline(cfg, pipeline.WithThrottle(limiter)), opts)
	outcomes, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	entries, failures := batchEntries(outcomes)

	var out io.Writer = cmd.OutOrStdout()
	if batchOutput != "" {
		f, createErr := os.Create(batchOutput)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output: %w", closeErr)
			}
		}()
		out = f
	}

	if err := writeJSON(out, entries); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	fmt.Fprintf(os.Stderr, "%d lookups, %d failed\n", len(entries), failures)
	return nil
}

func batchEntries(outcomes []*worker.LookupOutcome) ([]batchEntry, int) {
	entries := make([]batchEntry, 0, len(outcomes))
	failures := 0
	for _, o := range outcomes {
		entry := batchEntry{Input: o.Input}
		switch {
		case o.Error != nil:
			entry.Error = o.Error.Error()
			failures++
		case o.Result != nil:
			entry.AccountID = o.Result.AccountID
			entry.Cases = o.Result.Cases
		}
		entries = append(entries, entry)
	}
	return entries, failures
}
