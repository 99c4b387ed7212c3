package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/steelscan/leadscan/internal/model"
)

// ReadCandidateRecords loads collaborator-produced candidate records from a
// CSV file. Required columns: Title, Company, Date Published, Source URL,
// Description. Project Type, Location, and Contract Value are optional and
// filled by enrichment when absent. Rows without a title are skipped.
func ReadCandidateRecords(path string) ([]model.ContractRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, fmt.Errorf("candidates file has no Title column")
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []model.ContractRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		title := field(row, "title")
		if title == "" {
			continue
		}

		records = append(records, model.ContractRecord{
			Title:         title,
			Company:       field(row, "company"),
			ProjectType:   field(row, "project type"),
			Location:      field(row, "location"),
			ContractValue: field(row, "contract value"),
			DatePublished: field(row, "date published"),
			SourceURL:     field(row, "source url"),
			Description:   field(row, "description"),
		})
	}

	return records, nil
}
