package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

func (r *Repositories) LoadMembers(ctx context.Context) ([]model.TeamMember, error) {
	r.Log.Debug("LoadMembers: start")
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, email, role, join_date FROM team_members ORDER BY join_date, id`)
	if err != nil {
		r.Log.Error("LoadMembers: query failed", zap.Error(err))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.Log.Error("LoadMembers: close rows failed", zap.Error(err))
		}
	}()

	var out []model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.JoinDate); err != nil {
			r.Log.Error("LoadMembers: scan failed", zap.Error(err))
			return nil, err
		}
		out = append(out, m)
	}
	r.Log.Debug("LoadMembers: success", zap.Int("count", len(out)))
	return out, rows.Err()
}

func (r *Repositories) SaveMembers(ctx context.Context, members []model.TeamMember) error {
	r.Log.Debug("SaveMembers: start", zap.Int("count", len(members)))

	tx, err := r.BeginTx(ctx)
	if err != nil {
		r.Log.Error("SaveMembers: begin tx failed", zap.Error(err))
		return err
	}
	defer r.rollback(tx, "SaveMembers")

	if _, err := tx.ExecContext(ctx, `DELETE FROM team_members`); err != nil {
		r.Log.Error("SaveMembers: clear failed", zap.Error(err))
		return err
	}
	for _, m := range members {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO team_members(id, name, email, role, join_date) VALUES($1,$2,$3,$4,$5)`,
			m.ID, m.Name, m.Email, m.Role, m.JoinDate)
		if err != nil {
			r.Log.Error("SaveMembers: insert failed", zap.String("member_id", m.ID), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		r.Log.Error("SaveMembers: commit failed", zap.Error(err))
		return err
	}
	r.Log.Info("SaveMembers: success", zap.Int("count", len(members)))
	return nil
}
