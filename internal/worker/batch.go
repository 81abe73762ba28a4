package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/multisell/internal/model"
	"github.com/ppiankov/multisell/internal/steamid"
)

// ErrDisallowed is reported for aliases whose profile page robots.txt forbids
var ErrDisallowed = errors.New("profile lookup disallowed by robots.txt")

// Lookuper resolves an identifier and lists the account's containers
type Lookuper interface {
	Lookup(ctx context.Context, input string) (*model.LookupResult, error)
}

// RobotsGate decides whether a page may be fetched
type RobotsGate interface {
	CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error)
}

// BatchOptions configures a BatchProcessor. Limiter should be the same
// limiter the lookups wait on before each request; robots.txt crawl delays
// are applied to it.
type BatchOptions struct {
	Workers      int
	Limiter      *Limiter
	CommunityURL string
	Robots       RobotsGate
	Verbose      bool
}

// LookupJob looks up a single identifier
type LookupJob struct {
	Index     int
	Input     string
	processor *BatchProcessor
}

// Execute executes the lookup job
func (j *LookupJob) Execute(ctx context.Context) Result {
	return j.processor.lookupOne(ctx, j.Index, j.Input)
}

// LookupOutcome is the result of one batch lookup
type LookupOutcome struct {
	Index  int
	Input  string
	Result *model.LookupResult
	Error  error
}

// GetError returns the error from the lookup
func (r *LookupOutcome) GetError() error {
	return r.Error
}

// BatchProcessor looks up many identifiers concurrently. Failed lookups are
// reported, never retried.
type BatchProcessor struct {
	lookup       Lookuper
	workers      int
	limiter      *Limiter
	robots       RobotsGate
	communityURL string
	verbose      bool
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(lookup Lookuper, opts BatchOptions) *BatchProcessor {
	return &BatchProcessor{
		lookup:       lookup,
		workers:      opts.Workers,
		limiter:      opts.Limiter,
		robots:       opts.Robots,
		communityURL: strings.TrimRight(opts.CommunityURL, "/"),
		verbose:      opts.Verbose,
	}
}

// ProcessInputs looks up every input and returns outcomes in input order
func (b *BatchProcessor) ProcessInputs(ctx context.Context, inputs []string) []*LookupOutcome {
	if len(inputs) == 0 {
		return []*LookupOutcome{}
	}

	pool := NewPoolWithContext(ctx, b.workers)
	pool.Start()

	for i, input := range inputs {
		pool.Submit(&LookupJob{Index: i, Input: input, processor: b})
	}

	results := pool.Wait()

	outcomes := make([]*LookupOutcome, 0, len(inputs))
	done := make(map[int]bool, len(results))
	for _, result := range results {
		outcome := result.(*LookupOutcome)
		done[outcome.Index] = true
		outcomes = append(outcomes, outcome)
	}

	// Jobs dropped by a cancelled context still get an outcome
	for i, input := range inputs {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			outcomes = append(outcomes, &LookupOutcome{Index: i, Input: input, Error: err})
		}
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Index < outcomes[j].Index
	})

	return outcomes
}

// ProcessFile reads identifiers from a file and looks them up concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*LookupOutcome, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.ProcessInputs(ctx, inputs), nil
}

func (b *BatchProcessor) lookupOne(ctx context.Context, index int, input string) *LookupOutcome {
	outcome := &LookupOutcome{Index: index, Input: input}

	if alias, ok := steamid.AliasOf(input); ok && b.robots != nil {
		profileURL := steamid.ProfileURL(b.communityURL, alias)
		allowed, delay, err := b.robots.CanFetch(ctx, profileURL)
		if err == nil && !allowed {
			b.logf("skip %s: %v", input, ErrDisallowed)
			outcome.Error = ErrDisallowed
			return outcome
		}
		if delay > 0 && b.limiter != nil {
			if err := b.limiter.ApplyCrawlDelay(profileURL, delay); err != nil {
				b.logf("crawl delay for %s: %v", input, err)
			}
		}
	}

	result, err := b.lookup.Lookup(ctx, input)
	if err != nil {
		b.logf("lookup %s: %v", input, err)
		outcome.Error = err
		return outcome
	}

	outcome.Result = result
	return outcome
}

func (b *BatchProcessor) logf(format string, args ...interface{}) {
	if b.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// ReadInputsFromFile reads identifiers from a file, one per line. Blank lines
// and # comments are skipped, duplicates are dropped.
func ReadInputsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
