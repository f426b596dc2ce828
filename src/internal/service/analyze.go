package service

import (
	"context"

	"github.com/ce-fello/standup-agent/src/internal/model"
	"github.com/ce-fello/standup-agent/src/internal/notes"
)

// longRunningThreshold is the number of distinct window entries a PR
// reference must appear in before it counts as long-running.
const longRunningThreshold = 3

// analyzeEntry compares the freshly saved entry against the member's
// recent history. An empty window yields empty findings, never an
// error. RecurringBlockers is left empty pending a detection rule.
func (s *Service) analyzeEntry(ctx context.Context, entry model.StandupEntry) (model.StandupAnalysis, error) {
	history, err := s.store.EntriesByMember(ctx, entry.MemberID, s.lookbackDays)
	if err != nil {
		return model.StandupAnalysis{}, err
	}

	analysis := model.StandupAnalysis{
		MemberID:          entry.MemberID,
		CurrentEntry:      entry,
		IncompleteTickets: []string{},
		LongRunningPRs:    []string{},
		RecurringBlockers: []string{},
	}

	// Most recent window entry that is not the current one. The store
	// contract guarantees newest-first ordering.
	for i := range history {
		if history[i].ID != entry.ID {
			analysis.PreviousEntry = &history[i]
			break
		}
	}

	// Tickets planned in the previous "today" that the current
	// "yesterday" does not report. Extraction runs against the raw
	// field text, not the consolidated ticket lists, so only tickets
	// spelled out in those two fields count.
	if prev := analysis.PreviousEntry; prev != nil {
		planned := notes.Dedupe(notes.Tickets(prev.Today))
		reported := make(map[string]struct{})
		for _, t := range notes.Tickets(entry.Yesterday) {
			reported[t] = struct{}{}
		}
		for _, t := range planned {
			if _, ok := reported[t]; !ok {
				analysis.IncompleteTickets = append(analysis.IncompleteTickets, t)
			}
		}
	}

	analysis.LongRunningPRs = longRunningPRs(history, entry)

	return analysis, nil
}

// longRunningPRs counts, per PR reference, the distinct entries in
// the window that mention it. Entry PR lists are already deduplicated,
// so each entry contributes at most one count per reference.
func longRunningPRs(history []model.StandupEntry, current model.StandupEntry) []string {
	window := history
	seen := false
	for _, e := range window {
		if e.ID == current.ID {
			seen = true
			break
		}
	}
	if !seen {
		window = append(append([]model.StandupEntry{}, history...), current)
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range window {
		for _, pr := range e.PullRequests {
			if counts[pr] == 0 {
				order = append(order, pr)
			}
			counts[pr]++
		}
	}

	out := []string{}
	for _, pr := range order {
		if counts[pr] >= longRunningThreshold {
			out = append(out, pr)
		}
	}
	return out
}
