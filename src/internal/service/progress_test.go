package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

func TestTeamProgress_Empty(t *testing.T) {
	svc, mockStore, _ := createTestService()

	mockStore.On("LoadEntries", mock.Anything).Return([]model.StandupEntry{}, nil)

	progress, err := svc.TeamProgress(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 0, progress.TotalMembers)
	assert.Equal(t, 0, progress.TotalEntries)
	assert.Empty(t, progress.MemberProgress)
}

func TestTeamProgress_PerMemberBreakdown(t *testing.T) {
	svc, mockStore, _ := createTestService()

	// Service clock is fixed to 2025-03-14; the cutoff for 7 days is
	// 2025-03-07.
	entries := []model.StandupEntry{
		{ID: "e1", MemberID: "m1", MemberName: "Alice", Date: "2025-03-12", Tickets: []string{"THM-1", "THM-2"}},
		{ID: "e2", MemberID: "m1", MemberName: "Alice", Date: "2025-03-13", Tickets: []string{"THM-2"}, Blockers: "waiting on infra"},
		{ID: "e3", MemberID: "m2", MemberName: "Bob", Date: "2025-03-13"},
		{ID: "e4", MemberID: "m1", MemberName: "Alice", Date: "2025-03-01", Tickets: []string{"THM-99"}},
	}
	mockStore.On("LoadEntries", mock.Anything).Return(entries, nil)

	progress, err := svc.TeamProgress(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 2, progress.TotalMembers)
	assert.Equal(t, 3, progress.TotalEntries)
	assert.Len(t, progress.MemberProgress, 2)

	alice := progress.MemberProgress[0]
	assert.Equal(t, "m1", alice.MemberID)
	assert.Equal(t, "Alice", alice.MemberName)
	assert.Equal(t, 2, alice.StandupCount)
	assert.Equal(t, 2, alice.TicketCount)
	assert.Equal(t, 1, alice.BlockerCount)

	bob := progress.MemberProgress[1]
	assert.Equal(t, "m2", bob.MemberID)
	assert.Equal(t, 0, bob.TicketCount)
	assert.Equal(t, 0, bob.BlockerCount)
}

func TestTeamProgress_DefaultsWindow(t *testing.T) {
	svc, mockStore, _ := createTestService()

	mockStore.On("LoadEntries", mock.Anything).Return([]model.StandupEntry{
		{ID: "e1", MemberID: "m1", MemberName: "Alice", Date: "2025-03-13"},
	}, nil)

	progress, err := svc.TeamProgress(context.Background(), 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, progress.TotalEntries)
}
