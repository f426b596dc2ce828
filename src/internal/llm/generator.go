package llm

import (
	"context"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

// Draft is a question as returned by the text-generation service,
// before the core stamps identifiers and timestamps onto it.
type Draft struct {
	Question     string `json:"question"`
	QuestionType string `json:"questionType"`
	Context      string `json:"context"`
}

// Generator is the capability interface over the text-generation
// collaborator. Implementations own the fragile free-text contract;
// callers only ever see structured drafts. An empty slice means "no
// questions needed" and is not an error.
type Generator interface {
	GenerateQuestions(ctx context.Context, analysis model.StandupAnalysis) ([]Draft, error)
	GenerateFollowUps(ctx context.Context, question model.AgentQuestion, answer string, history []model.StandupEntry) ([]Draft, error)
}
