package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/osintworks/recon-cli/internal/model"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", eris.Errorf("export: unknown format %q (json, csv, xlsx)", s)
}

// Bundle is everything exported for one investigation.
type Bundle struct {
	Investigation model.Investigation         `json:"investigation"`
	Analysis      *model.IntelligenceAnalysis `json:"analysis,omitempty"`
}

// resultColumns defines the ordered result output columns.
var resultColumns = []string{
	"ID",
	"Data Type",
	"Value",
	"Confidence",
	"Relevance",
	"Source Method",
	"Source URL",
	"Location",
	"Validation",
	"Collected At",
}

// Write exports the bundle into dir and returns the written file path.
func Write(bundle Bundle, dir string, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "export: create dir")
	}

	path := filepath.Join(dir, fmt.Sprintf("investigation_%s.%s", bundle.Investigation.ID, format))

	var err error
	switch format {
	case FormatJSON:
		err = writeJSON(bundle, path)
	case FormatCSV:
		err = writeCSV(bundle, path)
	case FormatXLSX:
		err = writeXLSX(bundle, path)
	default:
		return "", eris.Errorf("export: unknown format %q", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(bundle Bundle, path string) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal bundle")
	}
	return eris.Wrap(os.WriteFile(path, data, 0o644), "export: write json")
}

func writeCSV(bundle Bundle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(resultColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, r := range bundle.Investigation.Results {
		if err := w.Write(resultRow(r)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	return nil
}

func resultRow(r model.IntelligenceResult) []string {
	return []string{
		r.ID,
		r.DataType,
		r.Value,
		fmt.Sprintf("%.2f", r.Confidence),
		fmt.Sprintf("%.2f", r.RelevanceScore),
		r.SourceMethod,
		r.SourceURL,
		r.GeographicLocation,
		string(r.ValidationStatus),
		r.Timestamp.UTC().Format("2006-01-02 15:04:05"),
	}
}

func writeXLSX(bundle Bundle, path string) error {
	f := xlsx.NewFile()

	results, err := f.AddSheet("Results")
	if err != nil {
		return eris.Wrap(err, "export: add results sheet")
	}
	addRow(results, resultColumns...)
	for _, r := range bundle.Investigation.Results {
		addRow(results, resultRow(r)...)
	}

	if bundle.Analysis != nil {
		if err := addAnalysisSheets(f, bundle.Analysis); err != nil {
			return err
		}
	}

	return eris.Wrap(f.Save(path), "export: save xlsx")
}

func addAnalysisSheets(f *xlsx.File, a *model.IntelligenceAnalysis) error {
	summary, err := f.AddSheet("Analysis")
	if err != nil {
		return eris.Wrap(err, "export: add analysis sheet")
	}
	addRow(summary, "Field", "Value")
	addRow(summary, "Target", a.TargetIdentifier)
	addRow(summary, "Business Type", a.BusinessType)
	addRow(summary, "Business Confidence", fmt.Sprintf("%.2f", a.BusinessConfidence))
	addRow(summary, "Company Size", a.CompanySizeEstimate)
	addRow(summary, "Target Audience", a.TargetAudience)
	addRow(summary, "Primary Location", a.PrimaryLocation)
	addRow(summary, "Geographic Coverage", a.GeographicCoverage)
	addRow(summary, "Personnel Count", fmt.Sprintf("%d", a.PersonnelCount))
	addRow(summary, "Contact Quality", fmt.Sprintf("%.2f", a.ContactQuality.OverallQuality))
	addRow(summary, "Digital Maturity", a.DigitalMaturity)
	addRow(summary, "Market Position", a.Market.MarketPosition)
	addRow(summary, "Data Quality", fmt.Sprintf("%.2f", a.DataQualityScore))
	for _, insight := range a.KeyInsights {
		addRow(summary, "Insight", insight)
	}
	for _, rec := range a.Recommendations {
		addRow(summary, "Recommendation", rec)
	}

	if len(a.DecisionMakers) > 0 {
		dm, err := f.AddSheet("Decision Makers")
		if err != nil {
			return eris.Wrap(err, "export: add decision makers sheet")
		}
		addRow(dm, "Name", "Title", "Department", "Importance", "Decision Power", "Contact Priority", "Email", "Phone")
		for _, d := range a.DecisionMakers {
			addRow(dm,
				d.Name, d.Title, d.Department,
				fmt.Sprintf("%d", d.ImportanceScore),
				string(d.DecisionPower), string(d.ContactPriority),
				d.Email, d.Phone,
			)
		}
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().Value = c
	}
}
