package model

// DefaultProjectType is assigned when no taxonomy keyword matches.
const DefaultProjectType = "Infrastructure Project"

// ContractRecord is the canonical unit flowing through the pipeline.
// Title uniquely identifies a news event for deduplication purposes.
type ContractRecord struct {
	Title         string `json:"title"`
	Company       string `json:"company"`
	ProjectType   string `json:"project_type"`
	Location      string `json:"location,omitempty"`
	ContractValue string `json:"contract_value,omitempty"`
	DatePublished string `json:"date_published"` // ISO date string
	SourceURL     string `json:"source_url"`
	Description   string `json:"description"`
}

// QualificationResult is attached to a record after AI evaluation.
type QualificationResult struct {
	Qualified         bool   `json:"qualified"`
	Tag               string `json:"tag"`
	SubCategory       string `json:"sub_category,omitempty"`
	SteelRequirements string `json:"steel_requirements,omitempty"`
	PotentialValue    string `json:"potential_value,omitempty"`
	TargetCompany     string `json:"target_company,omitempty"`
	Urgency           string `json:"urgency,omitempty"` // high, medium, low
	Reasoning         string `json:"reasoning,omitempty"`
}

// QualifiedLead pairs a record with its qualification for downstream consumers.
type QualifiedLead struct {
	Record        ContractRecord      `json:"record"`
	Qualification QualificationResult `json:"qualification"`
}

// AllowedTags is the closed Industry-SubCategory vocabulary. A qualification
// response carrying any other tag is a contract violation.
var AllowedTags = []string{
	"Automotive-Confirmed",
	"Automotive-Predictive_Alert",
	"Infrastructure-Contract_Won",
	"Infrastructure-Ongoing_Tender",
	"Realty-Announced",
	"Realty-Predictive_Alert",
	"Renewable_Energy-Contract_Won",
	"Renewable_Energy-Ongoing_Tender",
	"Renewable_Energy-Predictive_Alert",
}

// IsValidTag reports whether tag belongs to the allowed vocabulary.
func IsValidTag(tag string) bool {
	for _, t := range AllowedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Outcome is the terminal state of a record in the qualification pipeline.
type Outcome string

const (
	OutcomeDropped  Outcome = "dropped"  // semantic duplicate of a sent headline
	OutcomeAccepted Outcome = "accepted" // qualified lead
	OutcomeRejected Outcome = "rejected" // evaluated but not worth sending
	OutcomeErrored  Outcome = "errored"  // model calls exhausted, record skipped
)

// RecordResult is the per-record output of a pipeline run.
type RecordResult struct {
	Record        ContractRecord
	Outcome       Outcome
	Qualification *QualificationResult // set for accepted and rejected records
	Err           error                // set for errored records
}

// BatchSummary holds the user-visible counts for one pipeline run.
type BatchSummary struct {
	Processed  int
	Filtered   int
	Duplicates int
	Qualified  int
	Rejected   int
	Errored    int
}
