package model

import "time"

type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinDate string `json:"join_date"`
}

type StandupEntry struct {
	ID           string    `json:"id"`
	MemberID     string    `json:"member_id"`
	MemberName   string    `json:"member_name"`
	Date         string    `json:"date"`
	Timestamp    time.Time `json:"timestamp"`
	Summary      string    `json:"summary"`
	Yesterday    string    `json:"yesterday"`
	Today        string    `json:"today"`
	Blockers     string    `json:"blockers"`
	Tickets      []string  `json:"tickets"`
	PullRequests []string  `json:"pull_requests"`
	RawNotes     string    `json:"raw_notes"`
}

// Question kinds the generator may tag drafts with. Anything else is
// normalized to KindGeneral when the question is stamped.
const (
	KindIncompleteTicket = "incomplete_ticket"
	KindUnmergedPR       = "unmerged_pr"
	KindBlockerFollowUp  = "blocker_followup"
	KindGeneral          = "general"
)

type AgentQuestion struct {
	ID           string    `json:"id"`
	EntryID      string    `json:"entry_id"`
	MemberID     string    `json:"member_id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer,omitempty"`
	QuestionType string    `json:"question_type"`
	Context      string    `json:"context,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Answered reports whether an answer has been recorded. A question
// with no answer is open.
func (q AgentQuestion) Answered() bool {
	return q.Answer != ""
}

// StandupAnalysis is derived per processing cycle and never persisted.
// RecurringBlockers is reserved: the field travels through the prompt
// but no detection populates it yet.
type StandupAnalysis struct {
	MemberID          string        `json:"member_id"`
	CurrentEntry      StandupEntry  `json:"current_entry"`
	PreviousEntry     *StandupEntry `json:"previous_entry,omitempty"`
	IncompleteTickets []string      `json:"incomplete_tickets"`
	LongRunningPRs    []string      `json:"long_running_prs"`
	RecurringBlockers []string      `json:"recurring_blockers"`
}

type MemberProgress struct {
	MemberID     string `json:"member_id"`
	MemberName   string `json:"member_name"`
	StandupCount int    `json:"standup_count"`
	TicketCount  int    `json:"ticket_count"`
	BlockerCount int    `json:"blocker_count"`
}

type TeamProgress struct {
	TotalMembers   int              `json:"total_members"`
	TotalEntries   int              `json:"total_entries"`
	MemberProgress []MemberProgress `json:"member_progress"`
}
