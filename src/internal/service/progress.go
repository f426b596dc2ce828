package service

import (
	"context"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

// TeamProgress aggregates all persisted entries within the trailing
// window: per member, how many entries were submitted, how many
// distinct tickets were touched and how many entries reported
// blockers. Pure aggregation over loaded data.
func (s *Service) TeamProgress(ctx context.Context, windowDays int) (model.TeamProgress, error) {
	if windowDays <= 0 {
		windowDays = s.lookbackDays
	}

	entries, err := s.store.LoadEntries(ctx)
	if err != nil {
		return model.TeamProgress{}, err
	}

	cutoff := s.now().AddDate(0, 0, -windowDays).Format("2006-01-02")

	type memberStats struct {
		name     string
		entries  int
		tickets  map[string]struct{}
		blockers int
	}
	stats := make(map[string]*memberStats)
	var order []string

	progress := model.TeamProgress{MemberProgress: []model.MemberProgress{}}
	for _, e := range entries {
		if e.Date < cutoff {
			continue
		}
		progress.TotalEntries++

		st, ok := stats[e.MemberID]
		if !ok {
			st = &memberStats{name: e.MemberName, tickets: make(map[string]struct{})}
			stats[e.MemberID] = st
			order = append(order, e.MemberID)
		}
		st.entries++
		for _, t := range e.Tickets {
			st.tickets[t] = struct{}{}
		}
		if e.Blockers != "" {
			st.blockers++
		}
	}

	progress.TotalMembers = len(stats)
	for _, id := range order {
		st := stats[id]
		progress.MemberProgress = append(progress.MemberProgress, model.MemberProgress{
			MemberID:     id,
			MemberName:   st.name,
			StandupCount: st.entries,
			TicketCount:  len(st.tickets),
			BlockerCount: st.blockers,
		})
	}
	return progress, nil
}
