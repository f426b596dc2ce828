package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickets(t *testing.T) {
	tickets := Tickets("Fixed THM-1234 and started JIRA-567, ignored thm-99 and A-1")

	assert.Equal(t, []string{"THM-1234", "JIRA-567"}, tickets)
}

func TestTickets_NoMatches(t *testing.T) {
	assert.Empty(t, Tickets("nothing ticket shaped here"))
	assert.Empty(t, Tickets(""))
}

func TestPullRequests(t *testing.T) {
	prs := PullRequests("Opened PR #42, reviewed pull request 7 and a Merge Request #3")

	assert.Equal(t, []string{"PR #42", "pull request 7", "Merge Request #3"}, prs)
}

func TestPullRequests_RequiresNumber(t *testing.T) {
	assert.Empty(t, PullRequests("the PR is still open, no merge request yet"))
}

func TestExtraction_Idempotent(t *testing.T) {
	text := "THM-1 THM-2 THM-1 with PR #5 and PR #5"

	first := Dedupe(Tickets(text))
	second := Dedupe(Tickets(text))
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"THM-1", "THM-2"}, first)

	assert.Equal(t, Dedupe(PullRequests(text)), Dedupe(PullRequests(text)))
}

func TestDedupe_PreservesFirstSeenOrder(t *testing.T) {
	out := Dedupe([]string{"b", "a", "b", "c", "a"})

	assert.Equal(t, []string{"b", "a", "c"}, out)
}
