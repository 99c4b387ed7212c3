package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/steelscan/leadscan/internal/model"
)

// recordColumns is the fixed column set of the qualified-records table.
var recordColumns = []string{
	"Title",
	"Company",
	"Project Type",
	"Location",
	"Contract Value",
	"Date Published",
	"Tag",
	"Steel Requirements",
	"Potential Value",
	"Target Company",
	"Urgency",
	"Reasoning",
}

// RecordStore persists qualified leads as a CSV table. Each save rewrites
// the whole table for the current batch.
type RecordStore struct {
	path string
}

// NewRecordStore creates a store writing to path.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Path returns the table location.
func (s *RecordStore) Path() string {
	return s.path
}

// SaveAll replaces the table with the given leads. The write is atomic:
// temp file plus rename, so a reader never sees a partial table.
func (s *RecordStore) SaveAll(leads []model.QualifiedLead) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".records-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(recordColumns); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write header: %w", err)
	}

	for _, lead := range leads {
		row := []string{
			lead.Record.Title,
			lead.Record.Company,
			lead.Record.ProjectType,
			lead.Record.Location,
			lead.Record.ContractValue,
			lead.Record.DatePublished,
			lead.Qualification.Tag,
			lead.Qualification.SteelRequirements,
			lead.Qualification.PotentialValue,
			lead.Qualification.TargetCompany,
			lead.Qualification.Urgency,
			lead.Qualification.Reasoning,
		}
		if err := w.Write(row); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("flush rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace records table: %w", err)
	}

	return nil
}

// Load reads the table back. An absent file yields an empty slice.
func (s *RecordStore) Load() ([]model.QualifiedLead, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open records table: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records table: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	leads := make([]model.QualifiedLead, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(recordColumns) {
			return nil, fmt.Errorf("malformed row: got %d columns, want %d", len(row), len(recordColumns))
		}
		leads = append(leads, model.QualifiedLead{
			Record: model.ContractRecord{
				Title:         row[0],
				Company:       row[1],
				ProjectType:   row[2],
				Location:      row[3],
				ContractValue: row[4],
				DatePublished: row[5],
			},
			Qualification: model.QualificationResult{
				Qualified:         true,
				Tag:               row[6],
				SteelRequirements: row[7],
				PotentialValue:    row[8],
				TargetCompany:     row[9],
				Urgency:           row[10],
				Reasoning:         row[11],
			},
		})
	}

	return leads, nil
}
