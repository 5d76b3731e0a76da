package persona

import (
	"fmt"
	"strings"
)

// descriptor pairs the adjective and descriptive phrase a metric contributes
// to a persona name and tagline.
type descriptor struct {
	Adjective string
	Phrase    string
}

// featureDescriptors maps metric names to naming material. Metrics without an
// entry (raw volume metrics) contribute a generic tagline phrase and no
// adjective. The table is the single source of naming truth; extending it is
// how new metrics get names.
var featureDescriptors = map[string]descriptor{
	"filter_usage_ratio":        {"Filter-Focused", "uses filters extensively to narrow options"},
	"session_duration_seconds":  {"Deliberate", "spends significant time exploring before deciding"},
	"purchase_intent_ratio":     {"Decisive", "converts quickly once a decision is made"},
	"product_exploration_ratio": {"Explorer", "views many pages when evaluating options"},
	"option_selection_ratio":    {"Detail-Oriented", "focuses on product options and configuration"},
	"search_ratio":              {"Search-Driven", "relies on search functionality over navigation"},
	"review_engagement_ratio":   {"Research-Minded", "heavily engages with reviews"},
	"input_ratio":               {"Interactive", "high interaction with input forms"},
}

// fillerAdjectives never appear in a persona name on their own.
var fillerAdjectives = map[string]bool{
	"User":    true,
	"Shopper": true,
}

// Name derives a persona name and tagline from a cluster's high traits,
// ordered by descending z-score. The mapping is pure and total: every
// cluster, including one with no qualifying high traits, gets a non-empty
// name and a tagline ending in a period.
func Name(clusterID int, high []Trait) (name, tagline string) {
	var adjectives []string
	var phrases []string

	for _, trait := range high {
		desc, ok := featureDescriptors[trait.Metric]
		if !ok {
			phrases = append(phrases, "characterized by high "+humanize(trait.Metric))
			continue
		}
		adjectives = append(adjectives, desc.Adjective)
		phrases = append(phrases, desc.Phrase)
	}

	switch {
	case len(adjectives) > 0:
		kept := make([]string, 0, 2)
		for _, adj := range adjectives {
			if len(kept) == 2 {
				break
			}
			if fillerAdjectives[adj] {
				continue
			}
			kept = append(kept, adj)
		}
		if len(kept) == 0 {
			name = "Distinct Segment"
		} else {
			name = strings.Join(kept, " ") + " User"
		}
	default:
		name = fmt.Sprintf("Cluster %d Segment", clusterID)
	}

	if len(phrases) > 0 {
		tagline = strings.Join(phrases, "; ")
		tagline = strings.ToUpper(tagline[:1]) + tagline[1:]
		if !strings.HasSuffix(tagline, ".") {
			tagline += "."
		}
	} else {
		tagline = "A unique behavioral segment identified in the data."
	}

	return name, tagline
}

// humanize turns a snake_case metric name into spaced title case.
func humanize(metric string) string {
	words := strings.Split(metric, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
