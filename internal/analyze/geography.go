package analyze

import (
	"regexp"
	"sort"
	"strings"

	"github.com/osintworks/recon-cli/internal/model"
)

// Coverage thresholds over distinct location mentions.
const (
	internationalThreshold = 5
	regionalThreshold      = 2
)

var locationMentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(riyadh|jeddah|dubai|abu dhabi|doha|kuwait|manama|muscat)\b`),
	regexp.MustCompile(`\b(saudi arabia|uae|qatar|kuwait|bahrain|oman)\b`),
}

// geoReport is the output of the geographic sub-analyzer.
type geoReport struct {
	Distribution map[string]int
	Primary      string
	Secondary    []string
	Coverage     string
}

// analyzeGeography counts location mentions across explicit location tags
// and free-text values, then derives a coverage tier from the distinct
// location count.
func analyzeGeography(results []model.IntelligenceResult) geoReport {
	counts := make(map[string]int)

	for _, r := range results {
		if r.GeographicLocation != "" {
			counts[strings.ToLower(r.GeographicLocation)]++
		}
		value := strings.ToLower(r.Value)
		for _, re := range locationMentionPatterns {
			for _, m := range re.FindAllString(value, -1) {
				counts[m]++
			}
		}
	}

	// Sort by count desc, name asc for a stable ranking.
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	report := geoReport{Distribution: counts, Primary: "unknown"}
	if len(entries) > 0 {
		report.Primary = entries[0].name
		for _, e := range entries[1:] {
			report.Secondary = append(report.Secondary, e.name)
			if len(report.Secondary) == 4 {
				break
			}
		}
	}

	switch {
	case len(counts) > internationalThreshold:
		report.Coverage = "international"
	case len(counts) > regionalThreshold:
		report.Coverage = "regional"
	default:
		report.Coverage = "local"
	}

	return report
}
