package crawl

import (
	"testing"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name       string
		title      string
		summary    string
		wantAccept bool
		wantReason string
	}{
		{
			name:       "exclusion beats red cross override",
			title:      "Red Cross volunteer arrested in Columbia SC ice storm",
			wantAccept: false,
			wantReason: ReasonExcluded,
		},
		{
			name:       "red cross with location accepted without weather topic",
			title:      "Red Cross opens new office, Greenville SC",
			wantAccept: true,
		},
		{
			name:       "north carolina only rejected",
			title:      "North Carolina ice storm closes schools",
			wantAccept: false,
			wantReason: ReasonNorthCarolina,
		},
		{
			name:       "both carolinas accepted",
			title:      "North and South Carolina hit by ice storm",
			wantAccept: true,
		},
		{
			name:       "no location rejected",
			title:      "Ice storm brings down power lines in Texas",
			wantAccept: false,
			wantReason: ReasonLocation,
		},
		{
			name:       "location without weather topic rejected",
			title:      "Columbia city council approves new budget",
			wantAccept: false,
			wantReason: ReasonTopic,
		},
		{
			name:       "location and topic accepted",
			title:      "Freezing rain leaves thousands without power in the Midlands",
			wantAccept: true,
		},
		{
			name:       "topic found in summary",
			title:      "Crews work overnight in Lexington",
			summary:    "Dominion Energy says power restored to most customers after the ice storm.",
			wantAccept: true,
		},
		{
			name:       "crime story with storm language rejected",
			title:      "Police investigate shooting during Columbia ice storm",
			wantAccept: false,
			wantReason: ReasonExcluded,
		},
		{
			name:       "sports story rejected",
			title:      "Clemson basketball wins despite winter storm delay",
			wantAccept: false,
			wantReason: ReasonExcluded,
		},
		{
			name:       "case insensitive matching",
			title:      "ICE STORM WARNING FOR CHARLESTON",
			wantAccept: true,
		},
		{
			name:       "warming shelter coverage accepted",
			title:      "Warming shelter opens at Sumter community center",
			wantAccept: true,
		},
		{
			name:       "utility outage numbers accepted",
			title:      "Santee Cooper reports 12,000 outages in Horry County",
			wantAccept: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, reason := c.Classify(tt.title, tt.summary)
			if accepted != tt.wantAccept {
				t.Errorf("Classify(%q) accepted = %v, want %v (reason %q)", tt.title, accepted, tt.wantAccept, reason)
			}
			if !tt.wantAccept && reason != tt.wantReason {
				t.Errorf("Classify(%q) reason = %q, want %q", tt.title, reason, tt.wantReason)
			}
			if tt.wantAccept && reason != "" {
				t.Errorf("Classify(%q) reason = %q, want empty on accept", tt.title, reason)
			}
		})
	}
}

func TestClassifier_Relevant(t *testing.T) {
	c := NewClassifier()

	if !c.Relevant("Ice storm closes roads in Spartanburg", "") {
		t.Error("Relevant() = false for a clearly relevant headline")
	}
	if c.Relevant("Celebrity chef opens restaurant", "") {
		t.Error("Relevant() = true for an irrelevant headline")
	}
}
