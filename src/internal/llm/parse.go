package llm

import (
	"encoding/json"
	"regexp"
)

// The model is asked for a bare JSON array but tends to wrap it in
// prose. Take the widest [...] span and try to parse that.
var arrayFragment = regexp.MustCompile(`(?s)\[.*\]`)

// parseDrafts extracts the embedded question array from a free-text
// model reply. Any shape of parse failure means "zero questions",
// never an error.
func parseDrafts(response string) []Draft {
	fragment := arrayFragment.FindString(response)
	if fragment == "" {
		fragment = response
	}

	var drafts []Draft
	if err := json.Unmarshal([]byte(fragment), &drafts); err != nil {
		return nil
	}

	out := drafts[:0]
	for _, d := range drafts {
		if d.Question != "" {
			out = append(out, d)
		}
	}
	return out
}
