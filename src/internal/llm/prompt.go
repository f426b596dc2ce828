package llm

import (
	"fmt"
	"strings"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

func analysisPrompt(a model.StandupAnalysis) string {
	cur := a.CurrentEntry

	var b strings.Builder
	b.WriteString("You are a team lead conducting a standup review. Analyze the following standup information and generate relevant questions.\n\n")
	fmt.Fprintf(&b, "CURRENT STANDUP:\nDate: %s\nMember: %s\nYesterday: %s\nToday: %s\nBlockers: %s\nTickets: %s\nPull Requests: %s\n\n",
		cur.Date, cur.MemberName, cur.Yesterday, cur.Today, cur.Blockers,
		strings.Join(cur.Tickets, ", "), strings.Join(cur.PullRequests, ", "))

	if prev := a.PreviousEntry; prev != nil {
		fmt.Fprintf(&b, "PREVIOUS STANDUP (%s):\nYesterday: %s\nToday: %s\nTickets: %s\nPull Requests: %s\n\n",
			prev.Date, prev.Yesterday, prev.Today,
			strings.Join(prev.Tickets, ", "), strings.Join(prev.PullRequests, ", "))
	} else {
		b.WriteString("No previous standup data available.\n\n")
	}

	fmt.Fprintf(&b, "ANALYSIS:\n- Incomplete tickets from previous days: %s\n- Long-running PRs (>3 days): %s\n- Recurring blockers: %s\n\n",
		orNone(a.IncompleteTickets), orNone(a.LongRunningPRs), orNone(a.RecurringBlockers))

	b.WriteString(`Generate 2-4 specific, actionable questions based on:
1. Incomplete tickets that were mentioned before but not completed
2. Pull requests that have been open for multiple days
3. Recurring blockers or issues
4. Inconsistencies between previous "today" plans and current "yesterday" accomplishments
5. Missing context or unclear updates

Format your response as JSON array with this structure:
[
  {
    "question": "Why wasn't ticket THM-1234 completed as planned yesterday?",
    "questionType": "incomplete_ticket",
    "context": "Ticket THM-1234 was mentioned in yesterday's plan but not in today's completed work"
  }
]

Question types: incomplete_ticket, unmerged_pr, blocker_followup, general`)

	return b.String()
}

func followUpPrompt(q model.AgentQuestion, answer string, history []model.StandupEntry) string {
	recent := make([]string, 0, len(history))
	for _, e := range history {
		recent = append(recent, e.Date+": "+e.Summary)
	}

	var b strings.Builder
	b.WriteString("Based on the team member's response to a standup question, generate appropriate follow-up questions if needed.\n\n")
	fmt.Fprintf(&b, "ORIGINAL QUESTION: %s\nQUESTION TYPE: %s\nMEMBER'S ANSWER: %s\n\n", q.Question, q.QuestionType, answer)
	fmt.Fprintf(&b, "RECENT CONTEXT:\n%s\n\n", strings.Join(recent, "\n"))
	b.WriteString(`If the answer is satisfactory and complete, return an empty array.
If follow-up is needed, generate 1-2 specific questions to:
1. Get more details about blockers or delays
2. Understand timeline for resolution
3. Identify if help is needed
4. Clarify next steps

Format as JSON array with the same structure as before.`)

	return b.String()
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, ", ")
}
