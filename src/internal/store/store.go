package store

import (
	"context"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

// Storage is the persistence collaborator. Every save replaces the
// whole collection; there is no partial update and no locking, so
// concurrent writers follow last-writer-wins.
type Storage interface {
	LoadEntries(ctx context.Context) ([]model.StandupEntry, error)
	SaveEntries(ctx context.Context, entries []model.StandupEntry) error
	LoadMembers(ctx context.Context) ([]model.TeamMember, error)
	SaveMembers(ctx context.Context, members []model.TeamMember) error
	LoadQuestions(ctx context.Context) ([]model.AgentQuestion, error)
	SaveQuestions(ctx context.Context, questions []model.AgentQuestion) error

	// EntriesByMember returns the member's entries within the trailing
	// window, sorted newest first. The analyzer relies on this ordering.
	EntriesByMember(ctx context.Context, memberID string, windowDays int) ([]model.StandupEntry, error)
}
