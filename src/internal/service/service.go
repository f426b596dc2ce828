package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ce-fello/standup-agent/src/internal/api/apiErrors"
	"github.com/ce-fello/standup-agent/src/internal/llm"
	"github.com/ce-fello/standup-agent/src/internal/model"
	"github.com/ce-fello/standup-agent/src/internal/notes"
	"github.com/ce-fello/standup-agent/src/internal/store"
)

// Options carry the tunables previously held in a global config
// object. Zero values fall back to the defaults below.
type Options struct {
	LookbackDays int
	MaxQuestions int
}

const (
	defaultLookbackDays = 7
	defaultMaxQuestions = 5
)

type Service struct {
	store  store.Storage
	gen    llm.Generator
	parser *notes.Parser
	log    *zap.Logger

	lookbackDays int
	maxQuestions int

	now   func() time.Time
	newID func() string
}

func NewService(storage store.Storage, gen llm.Generator, logger *zap.Logger, opts Options) *Service {
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = defaultLookbackDays
	}
	if opts.MaxQuestions <= 0 {
		opts.MaxQuestions = defaultMaxQuestions
	}
	return &Service{
		store:        storage,
		gen:          gen,
		parser:       notes.NewParser(),
		log:          logger,
		lookbackDays: opts.LookbackDays,
		maxQuestions: opts.MaxQuestions,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// ProcessEntry runs the full submission pipeline: resolve the member,
// parse the notes, persist the entry, analyze against history and ask
// the generator for questions. Generator failures degrade to zero
// questions; a submission is never blocked by the collaborator.
func (s *Service) ProcessEntry(ctx context.Context, rawNotes, memberName string) (model.StandupEntry, []model.AgentQuestion, error) {
	member, err := s.findOrCreateMember(ctx, memberName)
	if err != nil {
		return model.StandupEntry{}, nil, err
	}

	entry := s.parser.Parse(rawNotes, member)

	entries, err := s.store.LoadEntries(ctx)
	if err != nil {
		return model.StandupEntry{}, nil, err
	}
	entries = append(entries, entry)
	if err := s.store.SaveEntries(ctx, entries); err != nil {
		return model.StandupEntry{}, nil, err
	}
	s.log.Info("ProcessEntry: entry saved",
		zap.String("entry_id", entry.ID),
		zap.String("member_id", member.ID),
		zap.Int("tickets", len(entry.Tickets)))

	analysis, err := s.analyzeEntry(ctx, entry)
	if err != nil {
		return model.StandupEntry{}, nil, err
	}

	drafts, err := s.gen.GenerateQuestions(ctx, analysis)
	if err != nil {
		s.log.Warn("ProcessEntry: generator failed, continuing without questions", zap.Error(err))
		drafts = nil
	}

	questions, err := s.stampAndSave(ctx, drafts, entry.ID, member.ID)
	if err != nil {
		return model.StandupEntry{}, nil, err
	}
	return entry, questions, nil
}

// RecordAnswer stamps the answer onto the question and asks the
// generator for follow-ups against the member's recent history.
// Re-answering is rejected; the recorded answer is immutable.
func (s *Service) RecordAnswer(ctx context.Context, questionID, answer string) ([]model.AgentQuestion, error) {
	questions, err := s.store.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, q := range questions {
		if q.ID == questionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apiErrors.APIError{Code: apiErrors.NotFound, Message: "question not found"}
	}
	if questions[idx].Answered() {
		return nil, apiErrors.APIError{Code: apiErrors.QuestionAnswered, Message: "question already has an answer"}
	}

	questions[idx].Answer = answer
	questions[idx].Timestamp = s.now()
	if err := s.store.SaveQuestions(ctx, questions); err != nil {
		return nil, err
	}
	answered := questions[idx]
	s.log.Info("RecordAnswer: answer saved", zap.String("question_id", answered.ID))

	history, err := s.store.EntriesByMember(ctx, answered.MemberID, s.lookbackDays)
	if err != nil {
		return nil, err
	}

	drafts, err := s.gen.GenerateFollowUps(ctx, answered, answer, history)
	if err != nil {
		s.log.Warn("RecordAnswer: follow-up generation failed, answer kept", zap.Error(err))
		drafts = nil
	}
	return s.stampAndSave(ctx, drafts, answered.EntryID, answered.MemberID)
}

// ListOpenQuestions returns all unanswered questions, optionally
// filtered to one member.
func (s *Service) ListOpenQuestions(ctx context.Context, memberID string) ([]model.AgentQuestion, error) {
	questions, err := s.store.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]model.AgentQuestion, 0)
	for _, q := range questions {
		if q.Answered() {
			continue
		}
		if memberID != "" && q.MemberID != memberID {
			continue
		}
		open = append(open, q)
	}
	return open, nil
}

// stampAndSave turns generator drafts into persisted questions. The
// whole question collection is rewritten, matching the storage
// contract.
func (s *Service) stampAndSave(ctx context.Context, drafts []llm.Draft, entryID, memberID string) ([]model.AgentQuestion, error) {
	if len(drafts) > s.maxQuestions {
		drafts = drafts[:s.maxQuestions]
	}
	if len(drafts) == 0 {
		return []model.AgentQuestion{}, nil
	}

	stamped := make([]model.AgentQuestion, 0, len(drafts))
	for _, d := range drafts {
		kind := d.QuestionType
		switch kind {
		case model.KindIncompleteTicket, model.KindUnmergedPR, model.KindBlockerFollowUp, model.KindGeneral:
		default:
			kind = model.KindGeneral
		}
		stamped = append(stamped, model.AgentQuestion{
			ID:           s.newID(),
			EntryID:      entryID,
			MemberID:     memberID,
			Question:     d.Question,
			QuestionType: kind,
			Context:      d.Context,
			Timestamp:    s.now(),
		})
	}

	existing, err := s.store.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveQuestions(ctx, append(existing, stamped...)); err != nil {
		return nil, err
	}
	s.log.Info("stampAndSave: questions saved", zap.Int("count", len(stamped)), zap.String("entry_id", entryID))
	return stamped, nil
}

// findOrCreateMember matches display names case-insensitively and
// registers unknown members on first sighting. Members are never
// mutated afterwards.
func (s *Service) findOrCreateMember(ctx context.Context, name string) (model.TeamMember, error) {
	members, err := s.store.LoadMembers(ctx)
	if err != nil {
		return model.TeamMember{}, err
	}
	for _, m := range members {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}

	member := model.TeamMember{
		ID:       s.newID(),
		Name:     name,
		Email:    contactHandle(name) + "@company.com",
		Role:     "Developer",
		JoinDate: s.now().Format("2006-01-02"),
	}
	members = append(members, member)
	if err := s.store.SaveMembers(ctx, members); err != nil {
		return model.TeamMember{}, err
	}
	s.log.Info("findOrCreateMember: new member registered", zap.String("member_id", member.ID), zap.String("name", name))
	return member, nil
}

func contactHandle(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), ".")
}
