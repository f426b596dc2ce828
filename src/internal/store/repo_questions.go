package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

func (r *Repositories) LoadQuestions(ctx context.Context) ([]model.AgentQuestion, error) {
	r.Log.Debug("LoadQuestions: start")
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, entry_id, member_id, question, answer, question_type, context, updated_at
        FROM agent_questions
        ORDER BY updated_at
    `)
	if err != nil {
		r.Log.Error("LoadQuestions: query failed", zap.Error(err))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.Log.Error("LoadQuestions: close rows failed", zap.Error(err))
		}
	}()

	var out []model.AgentQuestion
	for rows.Next() {
		var q model.AgentQuestion
		var answer sql.NullString
		if err := rows.Scan(&q.ID, &q.EntryID, &q.MemberID, &q.Question, &answer, &q.QuestionType, &q.Context, &q.Timestamp); err != nil {
			r.Log.Error("LoadQuestions: scan failed", zap.Error(err))
			return nil, err
		}
		if answer.Valid {
			q.Answer = answer.String
		}
		out = append(out, q)
	}
	r.Log.Debug("LoadQuestions: success", zap.Int("count", len(out)))
	return out, rows.Err()
}

func (r *Repositories) SaveQuestions(ctx context.Context, questions []model.AgentQuestion) error {
	r.Log.Debug("SaveQuestions: start", zap.Int("count", len(questions)))

	tx, err := r.BeginTx(ctx)
	if err != nil {
		r.Log.Error("SaveQuestions: begin tx failed", zap.Error(err))
		return err
	}
	defer r.rollback(tx, "SaveQuestions")

	if _, err := tx.ExecContext(ctx, `DELETE FROM agent_questions`); err != nil {
		r.Log.Error("SaveQuestions: clear failed", zap.Error(err))
		return err
	}
	for _, q := range questions {
		answer := sql.NullString{String: q.Answer, Valid: q.Answer != ""}
		_, err := tx.ExecContext(ctx, `
            INSERT INTO agent_questions(id, entry_id, member_id, question, answer, question_type, context, updated_at)
            VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
			q.ID, q.EntryID, q.MemberID, q.Question, answer, q.QuestionType, q.Context, q.Timestamp)
		if err != nil {
			r.Log.Error("SaveQuestions: insert failed", zap.String("question_id", q.ID), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		r.Log.Error("SaveQuestions: commit failed", zap.Error(err))
		return err
	}
	r.Log.Info("SaveQuestions: success", zap.Int("count", len(questions)))
	return nil
}
