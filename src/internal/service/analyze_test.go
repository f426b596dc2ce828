package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

func TestAnalyzeEntry_IncompleteTickets(t *testing.T) {
	svc, mockStore, _ := createTestService()

	current := model.StandupEntry{ID: "e2", MemberID: "m1", Yesterday: "Did other work"}
	previous := model.StandupEntry{ID: "e1", MemberID: "m1", Today: "Finish THM-9"}
	mockStore.On("EntriesByMember", mock.Anything, "m1", 7).
		Return([]model.StandupEntry{current, previous}, nil)

	analysis, err := svc.analyzeEntry(context.Background(), current)

	assert.NoError(t, err)
	assert.Equal(t, "e1", analysis.PreviousEntry.ID)
	assert.Equal(t, []string{"THM-9"}, analysis.IncompleteTickets)
}

func TestAnalyzeEntry_CompletedTicketNotReported(t *testing.T) {
	svc, mockStore, _ := createTestService()

	current := model.StandupEntry{ID: "e2", MemberID: "m1", Yesterday: "Closed THM-9 and THM-10"}
	previous := model.StandupEntry{ID: "e1", MemberID: "m1", Today: "Finish THM-9, start THM-11"}
	mockStore.On("EntriesByMember", mock.Anything, "m1", 7).
		Return([]model.StandupEntry{current, previous}, nil)

	analysis, err := svc.analyzeEntry(context.Background(), current)

	assert.NoError(t, err)
	assert.Equal(t, []string{"THM-11"}, analysis.IncompleteTickets)
	assert.NotContains(t, analysis.IncompleteTickets, "THM-9")
}

func TestAnalyzeEntry_FieldTextCountsNotTicketList(t *testing.T) {
	svc, mockStore, _ := createTestService()

	// THM-5 sits on the previous entry's ticket list but is not
	// spelled out in its "today" text, so it never becomes incomplete.
	current := model.StandupEntry{ID: "e2", MemberID: "m1", Yesterday: "misc"}
	previous := model.StandupEntry{ID: "e1", MemberID: "m1", Today: "keep refactoring", Tickets: []string{"THM-5"}}
	mockStore.On("EntriesByMember", mock.Anything, "m1", 7).
		Return([]model.StandupEntry{current, previous}, nil)

	analysis, err := svc.analyzeEntry(context.Background(), current)

	assert.NoError(t, err)
	assert.Empty(t, analysis.IncompleteTickets)
}

func TestAnalyzeEntry_NoHistory(t *testing.T) {
	svc, mockStore, _ := createTestService()

	current := model.StandupEntry{ID: "e1", MemberID: "m1", Today: "Start THM-1"}
	mockStore.On("EntriesByMember", mock.Anything, "m1", 7).
		Return([]model.StandupEntry{current}, nil)

	analysis, err := svc.analyzeEntry(context.Background(), current)

	assert.NoError(t, err)
	assert.Nil(t, analysis.PreviousEntry)
	assert.Empty(t, analysis.IncompleteTickets)
	assert.Empty(t, analysis.LongRunningPRs)
	assert.Empty(t, analysis.RecurringBlockers)
}

func TestAnalyzeEntry_LongRunningPRs(t *testing.T) {
	svc, mockStore, _ := createTestService()

	window := []model.StandupEntry{
		{ID: "e4", MemberID: "m1", PullRequests: []string{"PR #7", "PR #9"}},
		{ID: "e3", MemberID: "m1", PullRequests: []string{"PR #7", "PR #9"}},
		{ID: "e2", MemberID: "m1", PullRequests: []string{"PR #7"}},
		{ID: "e1", MemberID: "m1"},
	}
	mockStore.On("EntriesByMember", mock.Anything, "m1", 7).Return(window, nil)

	analysis, err := svc.analyzeEntry(context.Background(), window[0])

	assert.NoError(t, err)
	// PR #7 shows up in 3 entries, PR #9 only in 2.
	assert.Equal(t, []string{"PR #7"}, analysis.LongRunningPRs)
}

func TestAnalyzeEntry_CurrentEntryCountsTowardLongRunning(t *testing.T) {
	svc, mockStore, _ := createTestService()

	// The window from storage predates the current save.
	current := model.StandupEntry{ID: "e3", MemberID: "m1", PullRequests: []string{"PR #7"}}
	window := []model.StandupEntry{
		{ID: "e2", MemberID: "m1", PullRequests: []string{"PR #7"}},
		{ID: "e1", MemberID: "m1", PullRequests: []string{"PR #7"}},
	}
	mockStore.On("EntriesByMember", mock.Anything, "m1", 7).Return(window, nil)

	analysis, err := svc.analyzeEntry(context.Background(), current)

	assert.NoError(t, err)
	assert.Equal(t, []string{"PR #7"}, analysis.LongRunningPRs)
}
