package classify

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadRules reads a YAML rules file and merges it over the compiled-in
// defaults. Only tables present in the file are replaced; an empty path
// returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, eris.Wrapf(err, "classify: read rules %s", path)
	}

	// The YAML has a top-level "classify" key.
	var wrapper struct {
		Classify Rules `yaml:"classify"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Rules{}, eris.Wrap(err, "classify: parse rules")
	}

	override := wrapper.Classify
	if len(override.PeoplePatterns) > 0 {
		rules.PeoplePatterns = override.PeoplePatterns
	}
	if len(override.BusinessPatterns) > 0 {
		rules.BusinessPatterns = override.BusinessPatterns
	}
	if len(override.ServicePatterns) > 0 {
		rules.ServicePatterns = override.ServicePatterns
	}
	if len(override.TopicPatterns) > 0 {
		rules.TopicPatterns = override.TopicPatterns
	}
	if len(override.Locations) > 0 {
		rules.Locations = override.Locations
	}
	if len(override.IndustryKeywords) > 0 {
		rules.IndustryKeywords = override.IndustryKeywords
	}
	if len(override.Synonyms) > 0 {
		rules.Synonyms = override.Synonyms
	}
	if len(override.LocationVariants) > 0 {
		rules.LocationVariants = override.LocationVariants
	}
	if len(override.IndustryTerms) > 0 {
		rules.IndustryTerms = override.IndustryTerms
	}

	return rules, nil
}
