package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/steelscan/leadscan/internal/cache"
	"github.com/steelscan/leadscan/internal/llm"
	"github.com/steelscan/leadscan/internal/model"
	"github.com/steelscan/leadscan/internal/pipeline"
	"github.com/steelscan/leadscan/internal/store"
	"github.com/steelscan/leadscan/internal/worker"
)

var (
	inputPath     string
	headlinesPath string
	recordsPath   string
	cacheDir      string
	noCache       bool
	runTimeout    time.Duration
	enrichWorkers int
	callTimeout   int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process candidate records through the qualification pipeline",
	Long: `Run ingests candidate contract-news records from a CSV file, then:
- Drops irrelevant announcements (exclusion keywords veto everything)
- Classifies project type by longest-keyword match
- Extracts location and contract value from free text
- Checks each headline for semantic duplication against the sent-headline log
- Asks the model fallback chain to qualify each unique record as a steel lead
- Persists the updated headline log and the qualified-records table

Requires DEEPSEEK_API_KEY or GEMINI_API_KEY; with neither set the pipeline
refuses to start.

Example:
  leadscan run --input contract_news.csv
  leadscan run --input contract_news.csv --records qualified_news.csv -v`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&inputPath, "input", "contract_news.csv", "candidate records CSV")
	runCmd.Flags().StringVar(&headlinesPath, "headlines", "sent_headlines.json", "sent-headline log path")
	runCmd.Flags().StringVar(&recordsPath, "records", "qualified_news.csv", "qualified-records table path")
	runCmd.Flags().StringVar(&cacheDir, "cache-dir", ".leadscan-cache", "verdict cache directory")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the verdict cache")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall batch timeout")
	runCmd.Flags().IntVar(&enrichWorkers, "workers", 4, "enrichment worker count")
	runCmd.Flags().IntVar(&callTimeout, "call-timeout", 45, "per-model-call timeout in seconds")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Store.HeadlinesPath = headlinesPath
	cfg.Store.RecordsPath = recordsPath
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Concurrency.EnrichWorkers = enrichWorkers
	cfg.Output.Verbose = verbose
	cfg.LLM.Timeout = callTimeout

	// No credentials at all is a startup failure, not a degraded run.
	llm.LoadKeysFromEnv(&cfg.LLM)
	limiter := worker.NewLimiter(cfg.LLM.RequestsPerSecond, cfg.LLM.BurstSize)
	chain, err := llm.NewChainFromConfig(cfg.LLM, limiter, verbose)
	if err != nil {
		return fmt.Errorf("model configuration: %w", err)
	}

	candidates, err := pipeline.ReadCandidateRecords(inputPath)
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}
	if len(candidates) == 0 {
		fmt.Fprintln(os.Stderr, "No candidate records found")
		return nil
	}

	var verdicts cache.Cache
	if cfg.Cache.Enabled {
		verdicts = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	log := store.LoadHeadlineLog(cfg.Store.HeadlinesPath)
	records := store.NewRecordStore(cfg.Store.RecordsPath)

	if verbose {
		fmt.Fprintf(os.Stderr, "Candidates: %d\n", len(candidates))
		fmt.Fprintf(os.Stderr, "Sent headlines: %d\n", log.Len())
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, chain, log, records, verdicts)

	results, summary, err := p.Run(ctx, candidates)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	for _, res := range results {
		switch res.Outcome {
		case model.OutcomeAccepted:
			fmt.Fprintf(os.Stderr, "✓ %s [%s]\n", res.Record.Title, res.Qualification.Tag)
		case model.OutcomeDropped:
			if verbose {
				fmt.Fprintf(os.Stderr, "✗ %s (duplicate)\n", res.Record.Title)
			}
		case model.OutcomeRejected:
			if verbose {
				fmt.Fprintf(os.Stderr, "✗ %s (not qualified)\n", res.Record.Title)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Processed:   %d\n", summary.Processed)
	fmt.Fprintf(os.Stderr, "  Filtered:    %d\n", summary.Filtered)
	fmt.Fprintf(os.Stderr, "  Duplicates:  %d\n", summary.Duplicates)
	fmt.Fprintf(os.Stderr, "  Qualified:   %d\n", summary.Qualified)
	fmt.Fprintf(os.Stderr, "  Rejected:    %d\n", summary.Rejected)
	fmt.Fprintf(os.Stderr, "  Errored:     %d\n", summary.Errored)
	if summary.Qualified > 0 {
		fmt.Fprintf(os.Stderr, "  Output:      %s\n", recordsPath)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
