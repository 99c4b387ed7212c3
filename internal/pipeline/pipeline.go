// Package pipeline orchestrates the lead flow: relevance filtering,
// field enrichment, duplicate detection, and AI qualification.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/steelscan/leadscan/internal/cache"
	"github.com/steelscan/leadscan/internal/extract"
	"github.com/steelscan/leadscan/internal/llm"
	"github.com/steelscan/leadscan/internal/model"
	"github.com/steelscan/leadscan/internal/store"
	"github.com/steelscan/leadscan/internal/taxonomy"
	"github.com/steelscan/leadscan/internal/textutil"
	"github.com/steelscan/leadscan/internal/worker"
)

// descriptionBudget caps stored description text, matching the source-text
// excerpt the collaborators provide.
const descriptionBudget = 1000

// Completer abstracts the model fallback chain for testing.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Pipeline runs candidate records through enrichment and qualification.
type Pipeline struct {
	filter   *extract.Filter
	matcher  *taxonomy.Matcher
	location *extract.LocationExtractor
	chain    Completer
	verdicts cache.Cache // nil disables verdict caching
	log      *store.HeadlineLog
	records  *store.RecordStore
	config   *model.Config
}

// NewPipeline wires the pipeline. The headline log and record store are
// owned by the pipeline for the duration of a run; no other component may
// mutate them.
func NewPipeline(cfg *model.Config, chain Completer, log *store.HeadlineLog, records *store.RecordStore, verdicts cache.Cache) *Pipeline {
	return &Pipeline{
		filter:   extract.NewFilter(),
		matcher:  taxonomy.NewMatcher(),
		location: extract.NewLocationExtractor(),
		chain:    chain,
		verdicts: verdicts,
		log:      log,
		records:  records,
		config:   cfg,
	}
}

// Enrich classifies and extracts structured fields for one record. The
// second return value is false when the relevance filter drops the record.
func (p *Pipeline) Enrich(rec model.ContractRecord) (model.ContractRecord, bool) {
	if !p.filter.Relevant(rec.Title, rec.Company) {
		return rec, false
	}

	rec.Description = textutil.Truncate(textutil.StripHTML(rec.Description), descriptionBudget)

	combined := rec.Title + " " + rec.Company + " " + rec.Description

	if rec.ProjectType == "" || rec.ProjectType == model.DefaultProjectType {
		rec.ProjectType = p.matcher.Match(combined)
	}
	if rec.Location == "" {
		rec.Location = p.location.Extract(combined)
	}
	if rec.ContractValue == "" {
		rec.ContractValue = extract.ExtractContractValue(combined)
	}

	return rec, true
}

// enrichJob runs one record through Enrich on the worker pool.
type enrichJob struct {
	index    int
	record   model.ContractRecord
	pipeline *Pipeline
}

type enrichResult struct {
	index  int
	record model.ContractRecord
	kept   bool
}

func (r *enrichResult) GetError() error { return nil }

func (j *enrichJob) Execute(ctx context.Context) worker.Result {
	rec, kept := j.pipeline.Enrich(j.record)
	return &enrichResult{index: j.index, record: rec, kept: kept}
}

// EnrichAll enriches candidates concurrently, preserving input order, and
// returns the kept records plus the number filtered out.
func (p *Pipeline) EnrichAll(candidates []model.ContractRecord) ([]model.ContractRecord, int) {
	if len(candidates) == 0 {
		return nil, 0
	}

	pool := worker.NewPool(p.config.Concurrency.EnrichWorkers, len(candidates))
	pool.Start()

	for i, rec := range candidates {
		pool.Submit(&enrichJob{index: i, record: rec, pipeline: p})
	}

	results := pool.Wait()

	enriched := make([]*enrichResult, 0, len(results))
	for _, r := range results {
		enriched = append(enriched, r.(*enrichResult))
	}
	sort.Slice(enriched, func(i, j int) bool { return enriched[i].index < enriched[j].index })

	var kept []model.ContractRecord
	filtered := 0
	for _, r := range enriched {
		if r.kept {
			kept = append(kept, r.record)
		} else {
			filtered++
		}
	}

	return kept, filtered
}

// Run processes a batch end to end and persists state. Records are
// qualified strictly in sequence; every duplicate check in the batch sees
// the headline snapshot taken here, never headlines added mid-batch.
func (p *Pipeline) Run(ctx context.Context, candidates []model.ContractRecord) ([]model.RecordResult, model.BatchSummary, error) {
	var summary model.BatchSummary
	summary.Processed = len(candidates)

	kept, filtered := p.EnrichAll(candidates)
	summary.Filtered = filtered

	snapshot := p.log.Snapshot()

	var results []model.RecordResult
	var accepted []model.QualifiedLead
	var newHeadlines []string

	for i, rec := range kept {
		if err := ctx.Err(); err != nil {
			return results, summary, fmt.Errorf("batch cancelled: %w", err)
		}

		if p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "[%d/%d] Processing: %s\n", i+1, len(kept), rec.Title)
		}

		res := p.qualifyRecord(ctx, rec, snapshot)
		results = append(results, res)

		switch res.Outcome {
		case model.OutcomeDropped:
			summary.Duplicates++
		case model.OutcomeAccepted:
			summary.Qualified++
			accepted = append(accepted, model.QualifiedLead{Record: res.Record, Qualification: *res.Qualification})
			newHeadlines = append(newHeadlines, res.Record.Title)
		case model.OutcomeRejected:
			summary.Rejected++
		case model.OutcomeErrored:
			summary.Errored++
			fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", rec.Title, res.Err)
		}
	}

	// An all-duplicate or all-rejected batch leaves persisted state alone.
	if len(newHeadlines) > 0 {
		p.log.Append(newHeadlines...)
		if err := p.log.Save(); err != nil {
			return results, summary, fmt.Errorf("save headline log: %w", err)
		}
		if err := p.records.SaveAll(accepted); err != nil {
			return results, summary, fmt.Errorf("save qualified records: %w", err)
		}
	}

	return results, summary, nil
}

// qualifyRecord walks one record through the two-stage state machine:
// DuplicateCheck, then ContentQualification.
func (p *Pipeline) qualifyRecord(ctx context.Context, rec model.ContractRecord, sentHeadlines []string) model.RecordResult {
	dup, err := p.checkDuplicate(ctx, rec.Title, sentHeadlines)
	if err != nil {
		return model.RecordResult{Record: rec, Outcome: model.OutcomeErrored, Err: fmt.Errorf("duplicate check: %w", err)}
	}
	if dup {
		return model.RecordResult{Record: rec, Outcome: model.OutcomeDropped}
	}

	qual, err := p.qualifyContent(ctx, rec)
	if err != nil {
		return model.RecordResult{Record: rec, Outcome: model.OutcomeErrored, Err: fmt.Errorf("qualification: %w", err)}
	}

	outcome := model.OutcomeRejected
	if qual.Qualified {
		outcome = model.OutcomeAccepted
	}
	return model.RecordResult{Record: rec, Outcome: outcome, Qualification: &qual}
}

// checkDuplicate asks the model whether the title repeats a sent headline.
// The verdict depends on the current headline list, so it is never served
// from the verdict cache.
func (p *Pipeline) checkDuplicate(ctx context.Context, title string, sentHeadlines []string) (bool, error) {
	prompt := llm.BuildDedupPrompt(sentHeadlines, title)

	resp, err := p.chain.Complete(ctx, prompt)
	if err != nil {
		return false, err
	}

	return strings.Contains(strings.ToUpper(resp), "DUPLICATE"), nil
}

// qualifyContent asks the model to qualify the record as a steel lead.
// Responses are cached by title; a malformed response or an out-of-
// vocabulary tag yields an unqualified result, never an error.
func (p *Pipeline) qualifyContent(ctx context.Context, rec model.ContractRecord) (model.QualificationResult, error) {
	raw, ok := p.cachedVerdict(rec.Title)
	if !ok {
		prompt := llm.BuildQualificationPrompt(rec)

		var err error
		raw, err = p.chain.Complete(ctx, prompt)
		if err != nil {
			return model.QualificationResult{}, err
		}
		p.storeVerdict(rec.Title, raw)
	}

	return parseQualification(raw), nil
}

func (p *Pipeline) cachedVerdict(title string) (string, bool) {
	if p.verdicts == nil {
		return "", false
	}
	data, ok := p.verdicts.Get(cache.VerdictKey("qualify", title))
	if !ok {
		return "", false
	}
	return string(data), true
}

func (p *Pipeline) storeVerdict(title, raw string) {
	if p.verdicts == nil {
		return
	}
	if err := p.verdicts.Set(cache.VerdictKey("qualify", title), []byte(raw), 0); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot cache verdict for %q: %v\n", title, err)
	}
}

// parseQualification extracts the JSON object from a raw model response
// and validates the tag against the closed vocabulary.
func parseQualification(raw string) model.QualificationResult {
	jsonStr, ok := extractJSONObject(raw)
	if !ok {
		return model.QualificationResult{
			Qualified: false,
			Reasoning: "Failed to parse AI model response",
		}
	}

	var qual model.QualificationResult
	if err := json.Unmarshal([]byte(jsonStr), &qual); err != nil {
		return model.QualificationResult{
			Qualified: false,
			Reasoning: fmt.Sprintf("Failed to parse AI model response: %v", err),
		}
	}

	if qual.Qualified && !model.IsValidTag(qual.Tag) {
		return model.QualificationResult{
			Qualified: false,
			Reasoning: fmt.Sprintf("Model returned tag %q outside the allowed vocabulary", qual.Tag),
		}
	}

	return qual
}

// extractJSONObject returns the substring from the first '{' to the last
// '}' in raw.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
