package notes

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

const defaultSummary = "Standup update"

var (
	yesterdayLabel = regexp.MustCompile(`(?i)^(yesterday|completed|done):?\s*`)
	todayLabel     = regexp.MustCompile(`(?i)^(today|working|plans?):?\s*`)
	blockersLabel  = regexp.MustCompile(`(?i)^(blockers?|blocked|issues?):?\s*`)
)

// Parser converts raw standup notes into a structured entry. Parsing
// never fails: malformed or empty input yields an entry with empty
// fields.
type Parser struct {
	now   func() time.Time
	newID func() string
}

func NewParser() *Parser {
	return NewParserWith(time.Now, uuid.NewString)
}

// NewParserWith injects the clock and id source, for deterministic
// tests.
func NewParserWith(now func() time.Time, newID func() string) *Parser {
	return &Parser{now: now, newID: newID}
}

// Parse classifies each non-empty line into yesterday/today/blockers
// by keyword, in that priority order. Lines matching no keyword go to
// whichever section is current, or to the summary before any section
// is established. Every line is also scanned for ticket and PR
// references.
func (p *Parser) Parse(rawNotes string, member model.TeamMember) model.StandupEntry {
	now := p.now()
	entry := model.StandupEntry{
		ID:         p.newID(),
		MemberID:   member.ID,
		MemberName: member.Name,
		Date:       now.Format("2006-01-02"),
		Timestamp:  now,
		RawNotes:   rawNotes,
	}

	var summary, yesterday, today, blockers strings.Builder
	section := ""

	for _, line := range strings.Split(rawNotes, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "yesterday") || strings.Contains(lower, "completed") || strings.Contains(lower, "done"):
			section = "yesterday"
			yesterday.WriteString(yesterdayLabel.ReplaceAllString(line, "") + " ")
		case strings.Contains(lower, "today") || strings.Contains(lower, "working") || strings.Contains(lower, "plan"):
			section = "today"
			today.WriteString(todayLabel.ReplaceAllString(line, "") + " ")
		case strings.Contains(lower, "blocker") || strings.Contains(lower, "blocked") || strings.Contains(lower, "issue"):
			section = "blockers"
			blockers.WriteString(blockersLabel.ReplaceAllString(line, "") + " ")
		default:
			switch section {
			case "yesterday":
				yesterday.WriteString(line + " ")
			case "today":
				today.WriteString(line + " ")
			case "blockers":
				blockers.WriteString(line + " ")
			default:
				summary.WriteString(line + " ")
			}
		}

		entry.Tickets = append(entry.Tickets, Tickets(line)...)
		entry.PullRequests = append(entry.PullRequests, PullRequests(line)...)
	}

	entry.Yesterday = strings.TrimSpace(yesterday.String())
	entry.Today = strings.TrimSpace(today.String())
	entry.Blockers = strings.TrimSpace(blockers.String())
	entry.Summary = strings.TrimSpace(summary.String())
	if entry.Summary == "" {
		entry.Summary = synthesizeSummary(entry)
	}
	entry.Tickets = Dedupe(entry.Tickets)
	entry.PullRequests = Dedupe(entry.PullRequests)

	return entry
}

// synthesizeSummary builds a one-line digest out of truncated section
// previews when the notes carried no free-standing summary text.
func synthesizeSummary(entry model.StandupEntry) string {
	var parts []string
	if entry.Yesterday != "" {
		parts = append(parts, "Completed: "+truncate(entry.Yesterday, 50)+"...")
	}
	if entry.Today != "" {
		parts = append(parts, "Working on: "+truncate(entry.Today, 50)+"...")
	}
	if entry.Blockers != "" {
		parts = append(parts, "Blocked by: "+truncate(entry.Blockers, 30)+"...")
	}
	if len(parts) == 0 {
		return defaultSummary
	}
	return strings.Join(parts, " | ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
