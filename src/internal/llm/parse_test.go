package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

func TestParseDrafts_BareArray(t *testing.T) {
	drafts := parseDrafts(`[{"question":"Why is THM-1 late?","questionType":"incomplete_ticket","context":"planned yesterday"}]`)

	assert.Len(t, drafts, 1)
	assert.Equal(t, "Why is THM-1 late?", drafts[0].Question)
	assert.Equal(t, "incomplete_ticket", drafts[0].QuestionType)
	assert.Equal(t, "planned yesterday", drafts[0].Context)
}

func TestParseDrafts_SurroundingProse(t *testing.T) {
	response := "Sure! Here are the questions I came up with:\n" +
		`[{"question":"What blocks PR #4?"},{"question":"Need help?"}]` +
		"\nLet me know if you need more."

	drafts := parseDrafts(response)

	assert.Len(t, drafts, 2)
	assert.Equal(t, "What blocks PR #4?", drafts[0].Question)
}

func TestParseDrafts_EmptyArrayMeansNoFollowUp(t *testing.T) {
	assert.Empty(t, parseDrafts("The answer is complete. []"))
}

func TestParseDrafts_MalformedIsZeroQuestions(t *testing.T) {
	assert.Empty(t, parseDrafts("I could not produce JSON today."))
	assert.Empty(t, parseDrafts(`[{"question": busted`))
	assert.Empty(t, parseDrafts(""))
}

func TestParseDrafts_DropsEmptyQuestions(t *testing.T) {
	drafts := parseDrafts(`[{"question":""},{"question":"Real one"}]`)

	assert.Len(t, drafts, 1)
	assert.Equal(t, "Real one", drafts[0].Question)
}

func TestClient_GenerateQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[{\"question\":\"Why was THM-7 not finished?\",\"questionType\":\"incomplete_ticket\"}]"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", 1000, zap.NewNop())

	analysis := model.StandupAnalysis{
		MemberID:          "m1",
		CurrentEntry:      model.StandupEntry{ID: "e1", MemberName: "Alice", Date: "2025-03-14"},
		IncompleteTickets: []string{"THM-7"},
	}
	drafts, err := c.GenerateQuestions(context.Background(), analysis)

	assert.NoError(t, err)
	assert.Len(t, drafts, 1)
	assert.Equal(t, "Why was THM-7 not finished?", drafts[0].Question)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", 1000, zap.NewNop())

	_, err := c.GenerateFollowUps(context.Background(), model.AgentQuestion{Question: "q"}, "a", nil)

	assert.Error(t, err)
}
