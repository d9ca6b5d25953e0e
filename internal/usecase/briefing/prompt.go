package briefing

import (
	"fmt"
	"strings"

	"stormfeed/internal/domain/entity"
	"stormfeed/internal/utils/text"
)

const (
	// digestSummaryBudget caps how much of each article summary goes into
	// the prompt.
	digestSummaryBudget = 200

	// digestDateBudget caps the raw publish-date string in the prompt.
	digestDateBudget = 25
)

// BuildDigest renders the article set as a numbered plain-text list for the
// model prompt.
func BuildDigest(articles []entity.Article) string {
	var b strings.Builder

	for i, a := range articles {
		source := a.Source
		if source == "" {
			source = "Unknown"
		}

		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, source, a.Title)
		if a.Summary != "" {
			fmt.Fprintf(&b, "   Summary: %s\n", text.TruncateRunes(a.Summary, digestSummaryBudget))
		}

		published := a.Published
		if published == "" {
			published = "Unknown"
		}
		fmt.Fprintf(&b, "   Date: %s\n\n", text.TruncateRunes(published, digestDateBudget))
	}

	return b.String()
}

// BuildPrompt constructs the briefing prompt for an LLM backend. The model
// is asked for a strict JSON document matching the Report contract.
func BuildPrompt(articles []entity.Article) string {
	return fmt.Sprintf(`You are a disaster operations analyst for the American Red Cross. Analyze these news articles about the South Carolina Ice Storm (DR 153-26) and create a comprehensive briefing document.

NEWS ARTICLES:
%s
Generate a JSON response with this exact structure:
{
    "executive_summary": "2-3 paragraph executive summary of the situation for disaster leadership",
    "key_impacts": {
        "power_outages": ["bullet point 1", "bullet point 2", ...],
        "road_conditions": ["bullet point 1", "bullet point 2", ...],
        "schools_closures": ["bullet point 1", "bullet point 2", ...],
        "shelters_warming": ["bullet point 1", "bullet point 2", ...],
        "emergency_response": ["bullet point 1", "bullet point 2", ...]
    },
    "affected_areas": ["County/City 1", "County/City 2", ...],
    "critical_numbers": {
        "estimated_outages": "number or range",
        "crashes_reported": "number if mentioned",
        "shelters_open": "number if mentioned",
        "schools_affected": "number if mentioned"
    },
    "action_items": ["Recommended action 1", "Recommended action 2", ...],
    "timeline": [
        {"time": "date/time", "event": "description"},
        ...
    ],
    "resources_mentioned": ["hotline numbers", "websites", "contacts mentioned in articles"]
}

Be specific with numbers and locations when available. If information is not available, use "Not reported" or empty arrays.`, BuildDigest(articles))
}
