package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steelscan/leadscan/internal/model"
	"github.com/steelscan/leadscan/internal/pipeline"
	"github.com/steelscan/leadscan/internal/store"
)

var (
	classifyCompany     string
	classifyDescription string
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <title>",
	Short: "Classify a single announcement offline (no model calls)",
	Long: `Classify runs the relevance filter, taxonomy matcher, and field
extractors on a single announcement without touching any model API.

Example:
  leadscan classify "XYZ Ltd wins Rs. 800 crore highway contract in Maharashtra"
  leadscan classify "New solar park announced" --company "Acme Energy" --description "500 MW in Rajasthan"`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyCompany, "company", "", "company name")
	classifyCmd.Flags().StringVar(&classifyDescription, "description", "", "free-text description")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	// Offline enrichment only: no chain, no stores, no cache.
	p := pipeline.NewPipeline(cfg, nil, store.LoadHeadlineLog(""), nil, nil)

	rec := model.ContractRecord{
		Title:       args[0],
		Company:     classifyCompany,
		Description: classifyDescription,
	}

	enriched, relevant := p.Enrich(rec)
	if !relevant {
		fmt.Println("Relevant:       false")
		return nil
	}

	fmt.Println("Relevant:       true")
	fmt.Printf("Project Type:   %s\n", enriched.ProjectType)
	fmt.Printf("Location:       %s\n", orDash(enriched.Location))
	fmt.Printf("Contract Value: %s\n", orDash(enriched.ContractValue))

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
