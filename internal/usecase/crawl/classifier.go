package crawl

import (
	"strings"
)

// Rejection reasons reported by the classifier, used as metric labels.
const (
	ReasonExcluded      = "excluded"
	ReasonLocation      = "location"
	ReasonNorthCarolina = "north_carolina"
	ReasonTopic         = "topic"
)

// exclusionTerms reject a candidate unconditionally, before any other rule
// runs. Crime and police coverage dominates local station feeds during a
// storm and drowns out the operational signal; sports, obituaries,
// elections, entertainment, and photo galleries are off-topic noise the
// location gate alone cannot keep out.
var exclusionTerms = []string{
	// crime / violence
	"shooting", "shot", "murder", "killed", "arrest", "arrested",
	"standoff", "police", "suspect", "crime", "robbery", "assault",
	"homicide", "custody", "charged", "victim", "gunfire", "gunman",
	// sports
	"touchdown", "basketball", "baseball", "kickoff", "playoff",
	// obituaries
	"obituary", "obituaries", "dies at",
	// politics / elections
	"election", "ballot", "campaign",
	// entertainment and gallery filler
	"concert", "celebrity", "box office",
	"photos:", "photo gallery", "in pictures", "slideshow",
}

// scLocationTokens gate acceptance on a South Carolina connection: state
// name variants, major cities and towns, counties, and regional names.
// The bare "carolina" token is deliberate; the North Carolina rule below
// disambiguates it.
var scLocationTokens = []string{
	"south carolina", " sc ", "s.c.", "carolina",
	"columbia", "charleston", "greenville", "spartanburg",
	"myrtle beach", "rock hill", "mount pleasant", "summerville",
	"sumter", "florence", "aiken", "anderson",
	"beaufort", "hilton head", "lexington", "orangeburg",
	"conway", "georgetown", "clemson", "lancaster",
	"greenwood", "irmo", "goose creek", "bluffton",
	"north augusta", "midlands", "lowcountry", "upstate",
	"pee dee", "grand strand",
	"richland county", "horry county", "york county",
}

// topicTokens gate acceptance on actual winter-weather, outage, shelter, or
// emergency-infrastructure language. Generic words like "cold" or
// "emergency" alone let too much through.
var topicTokens = []string{
	"ice storm", "winter storm", "freezing rain", "frozen",
	"freeze warning", "ice accumulation", "sleet", "black ice",
	"power outage", "outages", "without power", "power restored",
	"warming shelter", "warming center", "road conditions",
	"hazardous roads", "icy roads", "school closing", "school delay",
	"school closure", "winter weather", "cold snap", "below freezing",
	"wind chill", "red cross shelter", "emergency shelter",
	"state of emergency", "national guard",
	"dominion energy", "duke energy", "santee cooper",
}

// overridePhrase accepts a candidate regardless of the topic gate when
// paired with a location token. A "red cross" mention in South Carolina is
// operationally relevant even when the headline has no weather language.
const overridePhrase = "red cross"

// verdict is the outcome of one classification rule.
type verdict int

const (
	verdictContinue verdict = iota // rule does not apply, evaluate the next one
	verdictAccept
	verdictReject
)

// rule is one step of the classification cascade. Rules run in order and
// the first Accept or Reject wins.
type rule struct {
	name  string
	apply func(text string) verdict
}

// Classifier decides whether a candidate belongs in the result set. The
// decision procedure is an explicit ordered rule table so precedence stays
// auditable: exclusion beats the override, the override beats both gates,
// and acceptance otherwise requires location AND topic together. Either
// gate alone produces too many false positives.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the standard rule cascade.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{
				name: ReasonExcluded,
				apply: func(text string) verdict {
					if containsAny(text, exclusionTerms) {
						return verdictReject
					}
					return verdictContinue
				},
			},
			{
				name: "override",
				apply: func(text string) verdict {
					if strings.Contains(text, overridePhrase) && containsAny(text, scLocationTokens) {
						return verdictAccept
					}
					return verdictContinue
				},
			},
			{
				name: ReasonLocation,
				apply: func(text string) verdict {
					if !containsAny(text, scLocationTokens) {
						return verdictReject
					}
					return verdictContinue
				},
			},
			{
				name: ReasonNorthCarolina,
				apply: func(text string) verdict {
					if strings.Contains(text, "north carolina") && !strings.Contains(text, "south carolina") {
						return verdictReject
					}
					return verdictContinue
				},
			},
			{
				name: ReasonTopic,
				apply: func(text string) verdict {
					if containsAny(text, topicTokens) {
						return verdictAccept
					}
					return verdictReject
				},
			},
		},
	}
}

// Classify evaluates the rule cascade over the case-folded concatenation of
// title and summary. It returns whether the candidate is accepted and, on
// rejection, the name of the rule that rejected it.
func (c *Classifier) Classify(title, summary string) (bool, string) {
	text := strings.ToLower(title + " " + summary)

	for _, r := range c.rules {
		switch r.apply(text) {
		case verdictAccept:
			return true, ""
		case verdictReject:
			return false, r.name
		case verdictContinue:
		}
	}

	// The final topic rule always accepts or rejects; this is unreachable
	// with the standard cascade.
	return false, ReasonTopic
}

// Relevant reports whether the candidate is accepted.
func (c *Classifier) Relevant(title, summary string) bool {
	ok, _ := c.Classify(title, summary)
	return ok
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
