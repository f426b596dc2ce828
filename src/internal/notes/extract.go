package notes

import "regexp"

var (
	// Ticket keys like THM-1234 or JIRA-567. Purely lexical, no
	// validation against a tracker.
	ticketPattern = regexp.MustCompile(`\b[A-Z]{2,}-\d+\b`)

	// PR references like "PR #42", "pull request 42", "merge request #7".
	prPattern = regexp.MustCompile(`(?i)\b(?:PR|pull request|merge request)\s*#?\d+\b`)
)

// Tickets returns every ticket-style token in text, in order of
// appearance, duplicates included. Callers dedupe at aggregation.
func Tickets(text string) []string {
	return ticketPattern.FindAllString(text, -1)
}

// PullRequests returns every pull-request-style token in text, in
// order of appearance, duplicates included.
func PullRequests(text string) []string {
	return prPattern.FindAllString(text, -1)
}

// Dedupe removes duplicate values preserving first-seen order.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
