package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/osintworks/recon-cli/internal/model"
)

func testBundle() Bundle {
	ended := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	return Bundle{
		Investigation: model.Investigation{
			ID:        "inv-42",
			Status:    model.StatusCompleted,
			StartedAt: ended.Add(-10 * time.Minute),
			EndedAt:   &ended,
			Strategy: model.DiscoveryStrategy{
				Target: model.DiscoveryTarget{PrimaryIdentifier: "hotels in Riyadh"},
			},
			Results: []model.IntelligenceResult{
				{
					ID:             "r-1",
					DataType:       model.DataTypeEmail,
					Value:          "info@grandhotel.sa",
					Confidence:     0.9,
					RelevanceScore: 0.85,
					SourceMethod:   "search_engines",
					Timestamp:      ended.Add(-5 * time.Minute),
				},
				{
					ID:             "r-2",
					DataType:       model.DataTypePhone,
					Value:          "+966512345678",
					Confidence:     0.7,
					RelevanceScore: 0.6,
					SourceMethod:   "business_directories",
					Timestamp:      ended.Add(-4 * time.Minute),
				},
			},
		},
		Analysis: &model.IntelligenceAnalysis{
			ID:               "an-1",
			InvestigationID:  "inv-42",
			TargetIdentifier: "hotels in Riyadh",
			BusinessType:     "hospitality",
			PrimaryLocation:  "riyadh",
			KeyInsights:      []string{"Strong local presence"},
			DecisionMakers: []model.DecisionMaker{
				{
					Person: model.Person{
						Name:            "Aisha Al-Qahtani",
						Title:           "CEO",
						ImportanceScore: 100,
						DecisionPower:   model.PowerHigh,
					},
					ContactPriority: model.PriorityCritical,
				},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "CSV", "Xlsx"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(testBundle(), dir, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "investigation_inv-42.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Bundle
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "inv-42", got.Investigation.ID)
	assert.Len(t, got.Investigation.Results, 2)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, "hospitality", got.Analysis.BusinessType)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(testBundle(), dir, FormatCSV)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, resultColumns, rows[0])
	assert.Equal(t, "info@grandhotel.sa", rows[1][2])
	assert.Equal(t, "0.90", rows[1][3])
	assert.Equal(t, "+966512345678", rows[2][2])
}

func TestWriteXLSX(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(testBundle(), dir, FormatXLSX)
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)

	results := f.Sheet["Results"]
	require.NotNil(t, results)
	require.GreaterOrEqual(t, len(results.Rows), 3)
	assert.Equal(t, "info@grandhotel.sa", results.Rows[1].Cells[2].String())

	analysis := f.Sheet["Analysis"]
	require.NotNil(t, analysis)

	dm := f.Sheet["Decision Makers"]
	require.NotNil(t, dm)
	assert.Equal(t, "Aisha Al-Qahtani", dm.Rows[1].Cells[0].String())
}

func TestWriteXLSXWithoutAnalysis(t *testing.T) {
	bundle := testBundle()
	bundle.Analysis = nil

	path, err := Write(bundle, t.TempDir(), FormatXLSX)
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Sheets, 1)
}
