package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/steelscan/leadscan/internal/cache"
	"github.com/steelscan/leadscan/internal/model"
	"github.com/steelscan/leadscan/internal/store"
)

// fakeCompleter routes prompts by content: the dedup prompt announces a
// deduplication system, everything else is a qualification request.
type fakeCompleter struct {
	dedupResponse   string
	qualifyResponse string
	err             error
	dedupCalls      int
	qualifyCalls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if strings.Contains(prompt, "deduplication system") {
		f.dedupCalls++
		return f.dedupResponse, nil
	}
	f.qualifyCalls++
	return f.qualifyResponse, nil
}

const qualifiedJSON = `Here is my analysis:
{
  "qualified": true,
  "tag": "Infrastructure-Contract_Won",
  "sub_category": "Highway",
  "steel_requirements": "TMT bars and structural steel",
  "potential_value": "15%",
  "target_company": "XYZ Infra Ltd",
  "urgency": "high",
  "reasoning": "Large highway contract with private buyer"
}`

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Concurrency.EnrichWorkers = 2
	return cfg
}

func testStores(t *testing.T) (*store.HeadlineLog, *store.RecordStore, string, string) {
	t.Helper()
	dir := t.TempDir()
	headlinesPath := filepath.Join(dir, "sent_headlines.json")
	recordsPath := filepath.Join(dir, "qualified_news.csv")
	return store.LoadHeadlineLog(headlinesPath), store.NewRecordStore(recordsPath), headlinesPath, recordsPath
}

func TestEnrich_FillsMissingFields(t *testing.T) {
	p := NewPipeline(testConfig(), nil, store.LoadHeadlineLog(""), nil, nil)

	rec, kept := p.Enrich(model.ContractRecord{
		Title:   "XYZ Ltd wins Rs. 800 crore highway project in Maharashtra",
		Company: "XYZ Infra Ltd",
	})
	if !kept {
		t.Fatal("Expected record to pass the relevance filter")
	}
	if rec.ProjectType != "Transportation - Highway" {
		t.Errorf("ProjectType = %q, want %q", rec.ProjectType, "Transportation - Highway")
	}
	if rec.Location != "Maharashtra" {
		t.Errorf("Location = %q, want %q", rec.Location, "Maharashtra")
	}
	if rec.ContractValue != "Rs. 800 crore" {
		t.Errorf("ContractValue = %q, want %q", rec.ContractValue, "Rs. 800 crore")
	}
}

func TestEnrich_KeepsExistingFields(t *testing.T) {
	p := NewPipeline(testConfig(), nil, store.LoadHeadlineLog(""), nil, nil)

	rec, kept := p.Enrich(model.ContractRecord{
		Title:         "XYZ Ltd wins Rs. 800 crore highway project",
		Company:       "XYZ Infra Ltd",
		ProjectType:   "Custom Type",
		Location:      "Pune",
		ContractValue: "Rs. 1 crore",
	})
	if !kept {
		t.Fatal("Expected record to pass the relevance filter")
	}
	if rec.ProjectType != "Custom Type" {
		t.Errorf("ProjectType overwritten: %q", rec.ProjectType)
	}
	if rec.Location != "Pune" {
		t.Errorf("Location overwritten: %q", rec.Location)
	}
	if rec.ContractValue != "Rs. 1 crore" {
		t.Errorf("ContractValue overwritten: %q", rec.ContractValue)
	}
}

func TestEnrich_ReclassifiesDefaultProjectType(t *testing.T) {
	p := NewPipeline(testConfig(), nil, store.LoadHeadlineLog(""), nil, nil)

	rec, kept := p.Enrich(model.ContractRecord{
		Title:       "XYZ Ltd wins Rs. 800 crore highway project",
		ProjectType: model.DefaultProjectType,
	})
	if !kept {
		t.Fatal("Expected record to pass the relevance filter")
	}
	if rec.ProjectType != "Transportation - Highway" {
		t.Errorf("Expected default placeholder reclassified, got %q", rec.ProjectType)
	}
}

func TestEnrich_StripsMarkupFromDescription(t *testing.T) {
	p := NewPipeline(testConfig(), nil, store.LoadHeadlineLog(""), nil, nil)

	rec, kept := p.Enrich(model.ContractRecord{
		Title:       "ABC bags Rs. 500 crore order",
		Description: "<p>Work on <b>NH-48</b></p><script>alert(1)</script>",
	})
	if !kept {
		t.Fatal("Expected record to pass the relevance filter")
	}
	if rec.Description != "Work on NH-48" {
		t.Errorf("Description = %q, want markup stripped", rec.Description)
	}
}

func TestEnrich_FilterDrops(t *testing.T) {
	p := NewPipeline(testConfig(), nil, store.LoadHeadlineLog(""), nil, nil)

	_, kept := p.Enrich(model.ContractRecord{
		Title: "Board meeting to approve Rs. 900 crore steel plant expansion",
	})
	if kept {
		t.Error("Expected exclusion keyword to drop the record")
	}
}

func TestEnrichAll_PreservesOrder(t *testing.T) {
	p := NewPipeline(testConfig(), nil, store.LoadHeadlineLog(""), nil, nil)

	var candidates []model.ContractRecord
	for _, city := range []string{"Mumbai", "Pune", "Nagpur", "Surat", "Indore"} {
		candidates = append(candidates, model.ContractRecord{
			Title: "Wins Rs. 100 crore metro contract in " + city,
		})
	}

	kept, filtered := p.EnrichAll(candidates)
	if filtered != 0 {
		t.Errorf("Expected nothing filtered, got %d", filtered)
	}
	if len(kept) != len(candidates) {
		t.Fatalf("Expected %d records, got %d", len(candidates), len(kept))
	}
	for i, rec := range kept {
		if rec.Title != candidates[i].Title {
			t.Errorf("Order broken at %d: got %q, want %q", i, rec.Title, candidates[i].Title)
		}
	}
}

func TestRun_QualifiedLeadPersisted(t *testing.T) {
	log, records, headlinesPath, _ := testStores(t)
	completer := &fakeCompleter{dedupResponse: "UNIQUE", qualifyResponse: qualifiedJSON}

	p := NewPipeline(testConfig(), completer, log, records, nil)

	title := "XYZ Ltd wins Rs. 800 crore highway project in Maharashtra"
	results, summary, err := p.Run(context.Background(), []model.ContractRecord{
		{Title: title, Company: "XYZ Infra Ltd"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Processed != 1 || summary.Qualified != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if len(results) != 1 || results[0].Outcome != model.OutcomeAccepted {
		t.Fatalf("Unexpected results: %+v", results)
	}
	if results[0].Qualification.Tag != "Infrastructure-Contract_Won" {
		t.Errorf("Tag = %q", results[0].Qualification.Tag)
	}
	if completer.dedupCalls != 1 || completer.qualifyCalls != 1 {
		t.Errorf("Expected one call per stage, got %d and %d", completer.dedupCalls, completer.qualifyCalls)
	}

	reloaded := store.LoadHeadlineLog(headlinesPath)
	if reloaded.Len() != 1 || reloaded.Snapshot()[0] != title {
		t.Errorf("Headline log not persisted: %v", reloaded.Snapshot())
	}

	leads, err := records.Load()
	if err != nil {
		t.Fatalf("Load records failed: %v", err)
	}
	if len(leads) != 1 || leads[0].Qualification.Tag != "Infrastructure-Contract_Won" {
		t.Errorf("Records table not persisted: %+v", leads)
	}
	if leads[0].Record.Location != "Maharashtra" || leads[0].Record.ContractValue != "Rs. 800 crore" {
		t.Errorf("Enriched fields lost: %+v", leads[0].Record)
	}
}

func TestRun_DuplicateLeavesStateUntouched(t *testing.T) {
	log, records, headlinesPath, recordsPath := testStores(t)
	completer := &fakeCompleter{dedupResponse: "DUPLICATE"}

	p := NewPipeline(testConfig(), completer, log, records, nil)

	results, summary, err := p.Run(context.Background(), []model.ContractRecord{
		{Title: "XYZ Ltd wins Rs. 800 crore highway project"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Duplicates != 1 || summary.Qualified != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if results[0].Outcome != model.OutcomeDropped {
		t.Errorf("Outcome = %q, want dropped", results[0].Outcome)
	}
	if completer.qualifyCalls != 0 {
		t.Errorf("Expected no qualification call for a duplicate, got %d", completer.qualifyCalls)
	}

	if store.LoadHeadlineLog(headlinesPath).Len() != 0 {
		t.Error("Headline log written for an all-duplicate batch")
	}
	if leads, _ := store.NewRecordStore(recordsPath).Load(); leads != nil {
		t.Error("Records table written for an all-duplicate batch")
	}
}

func TestRun_DedupAnswerIsCaseInsensitive(t *testing.T) {
	log, records, _, _ := testStores(t)
	completer := &fakeCompleter{dedupResponse: "This looks like a duplicate to me."}

	p := NewPipeline(testConfig(), completer, log, records, nil)

	results, _, err := p.Run(context.Background(), []model.ContractRecord{
		{Title: "XYZ Ltd wins Rs. 800 crore highway project"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Outcome != model.OutcomeDropped {
		t.Errorf("Outcome = %q, want dropped", results[0].Outcome)
	}
}

func TestRun_MalformedResponseRejects(t *testing.T) {
	log, records, headlinesPath, _ := testStores(t)
	completer := &fakeCompleter{dedupResponse: "UNIQUE", qualifyResponse: "no json here at all"}

	p := NewPipeline(testConfig(), completer, log, records, nil)

	results, summary, err := p.Run(context.Background(), []model.ContractRecord{
		{Title: "XYZ Ltd wins Rs. 800 crore highway project"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Rejected != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if results[0].Outcome != model.OutcomeRejected {
		t.Errorf("Outcome = %q, want rejected", results[0].Outcome)
	}
	if !strings.Contains(results[0].Qualification.Reasoning, "Failed to parse") {
		t.Errorf("Expected parse diagnostic, got %q", results[0].Qualification.Reasoning)
	}
	if store.LoadHeadlineLog(headlinesPath).Len() != 0 {
		t.Error("Headline log written for an all-rejected batch")
	}
}

func TestRun_InvalidTagRejects(t *testing.T) {
	log, records, _, _ := testStores(t)
	completer := &fakeCompleter{
		dedupResponse:   "UNIQUE",
		qualifyResponse: `{"qualified": true, "tag": "Mining-Contract_Won", "reasoning": "x"}`,
	}

	p := NewPipeline(testConfig(), completer, log, records, nil)

	results, summary, err := p.Run(context.Background(), []model.ContractRecord{
		{Title: "XYZ Ltd wins Rs. 800 crore highway project"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Rejected != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if results[0].Outcome != model.OutcomeRejected {
		t.Errorf("Outcome = %q, want rejected", results[0].Outcome)
	}
	if !strings.Contains(results[0].Qualification.Reasoning, "allowed vocabulary") {
		t.Errorf("Expected tag diagnostic, got %q", results[0].Qualification.Reasoning)
	}
}

func TestRun_ExhaustedChainSkipsRecord(t *testing.T) {
	log, records, headlinesPath, _ := testStores(t)
	failing := &fakeCompleter{err: errors.New("all model providers failed: quota")}
	working := &fakeCompleter{dedupResponse: "UNIQUE", qualifyResponse: qualifiedJSON}

	// One failing batch must not abort the run or dirty persisted state.
	p := NewPipeline(testConfig(), failing, log, records, nil)
	results, summary, err := p.Run(context.Background(), []model.ContractRecord{
		{Title: "XYZ Ltd wins Rs. 800 crore highway project"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Errored != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if results[0].Outcome != model.OutcomeErrored || results[0].Err == nil {
		t.Errorf("Unexpected result: %+v", results[0])
	}
	if store.LoadHeadlineLog(headlinesPath).Len() != 0 {
		t.Error("Headline log written for an all-errored batch")
	}

	// An errored record stays eligible for the next run.
	p = NewPipeline(testConfig(), working, log, records, nil)
	_, summary, err = p.Run(context.Background(), []model.ContractRecord{
		{Title: "XYZ Ltd wins Rs. 800 crore highway project"},
	})
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if summary.Qualified != 1 {
		t.Errorf("Expected record qualified on retry, got %+v", summary)
	}
}

func TestRun_VerdictCacheSkipsQualificationCall(t *testing.T) {
	verdicts := cache.NewMemoryCache(time.Hour, time.Hour)
	title := "XYZ Ltd wins Rs. 800 crore highway project in Maharashtra"

	log1, records1, _, _ := testStores(t)
	first := &fakeCompleter{dedupResponse: "UNIQUE", qualifyResponse: qualifiedJSON}
	p1 := NewPipeline(testConfig(), first, log1, records1, verdicts)
	if _, summary, err := p1.Run(context.Background(), []model.ContractRecord{{Title: title}}); err != nil || summary.Qualified != 1 {
		t.Fatalf("First run: err=%v summary=%+v", err, summary)
	}
	if first.qualifyCalls != 1 {
		t.Fatalf("Expected one qualification call, got %d", first.qualifyCalls)
	}

	// Second run over fresh stores but the same cache: the qualification
	// verdict is served from cache, only the duplicate check hits the model.
	log2, records2, _, _ := testStores(t)
	second := &fakeCompleter{dedupResponse: "UNIQUE", qualifyResponse: "garbage"}
	p2 := NewPipeline(testConfig(), second, log2, records2, verdicts)
	_, summary, err := p2.Run(context.Background(), []model.ContractRecord{{Title: title}})
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if summary.Qualified != 1 {
		t.Errorf("Expected cached verdict to qualify, got %+v", summary)
	}
	if second.qualifyCalls != 0 {
		t.Errorf("Expected qualification served from cache, got %d calls", second.qualifyCalls)
	}
	if second.dedupCalls != 1 {
		t.Errorf("Expected duplicate check to bypass the cache, got %d calls", second.dedupCalls)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	log, records, _, _ := testStores(t)
	completer := &fakeCompleter{dedupResponse: "UNIQUE", qualifyResponse: qualifiedJSON}
	p := NewPipeline(testConfig(), completer, log, records, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := p.Run(ctx, []model.ContractRecord{
		{Title: "XYZ Ltd wins Rs. 800 crore highway project"},
	})
	if err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}

func TestParseQualification(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantQualified bool
		wantTag       string
	}{
		{
			name:          "clean json",
			raw:           `{"qualified": true, "tag": "Realty-Announced"}`,
			wantQualified: true,
			wantTag:       "Realty-Announced",
		},
		{
			name:          "json wrapped in markdown fences",
			raw:           "```json\n{\"qualified\": true, \"tag\": \"Automotive-Confirmed\"}\n```",
			wantQualified: true,
			wantTag:       "Automotive-Confirmed",
		},
		{
			name:          "json with surrounding prose",
			raw:           "Sure, here you go: {\"qualified\": false, \"reasoning\": \"too small\"} Hope that helps!",
			wantQualified: false,
		},
		{
			name:          "no json at all",
			raw:           "I cannot answer that.",
			wantQualified: false,
		},
		{
			name:          "broken json",
			raw:           `{"qualified": true, "tag": `,
			wantQualified: false,
		},
		{
			name:          "qualified with unknown tag",
			raw:           `{"qualified": true, "tag": "Aerospace-Confirmed"}`,
			wantQualified: false,
		},
		{
			name:          "unqualified with unknown tag passes through",
			raw:           `{"qualified": false, "tag": "whatever", "reasoning": "not a lead"}`,
			wantQualified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseQualification(tt.raw)
			if got.Qualified != tt.wantQualified {
				t.Errorf("Qualified = %v, want %v", got.Qualified, tt.wantQualified)
			}
			if tt.wantTag != "" && got.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", got.Tag, tt.wantTag)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	if _, ok := extractJSONObject("no braces"); ok {
		t.Error("Expected no object")
	}
	if _, ok := extractJSONObject("}{"); ok {
		t.Error("Expected no object for reversed braces")
	}
	got, ok := extractJSONObject(`prefix {"a": {"b": 1}} suffix`)
	if !ok || got != `{"a": {"b": 1}}` {
		t.Errorf("extractJSONObject = %q, %v", got, ok)
	}
}
