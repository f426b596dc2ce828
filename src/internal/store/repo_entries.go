package store

import (
	"context"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

func (r *Repositories) LoadEntries(ctx context.Context) ([]model.StandupEntry, error) {
	r.Log.Debug("LoadEntries: start")
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, member_id, member_name, entry_date, created_at,
               summary, yesterday, today, blockers, tickets, pull_requests, raw_notes
        FROM standup_entries
        ORDER BY created_at
    `)
	if err != nil {
		r.Log.Error("LoadEntries: query failed", zap.Error(err))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.Log.Error("LoadEntries: close rows failed", zap.Error(err))
		}
	}()

	var out []model.StandupEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			r.Log.Error("LoadEntries: scan failed", zap.Error(err))
			return nil, err
		}
		out = append(out, e)
	}
	r.Log.Debug("LoadEntries: success", zap.Int("count", len(out)))
	return out, rows.Err()
}

func (r *Repositories) SaveEntries(ctx context.Context, entries []model.StandupEntry) error {
	r.Log.Debug("SaveEntries: start", zap.Int("count", len(entries)))

	tx, err := r.BeginTx(ctx)
	if err != nil {
		r.Log.Error("SaveEntries: begin tx failed", zap.Error(err))
		return err
	}
	defer r.rollback(tx, "SaveEntries")

	if _, err := tx.ExecContext(ctx, `DELETE FROM standup_entries`); err != nil {
		r.Log.Error("SaveEntries: clear failed", zap.Error(err))
		return err
	}
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO standup_entries(id, member_id, member_name, entry_date, created_at,
                summary, yesterday, today, blockers, tickets, pull_requests, raw_notes)
            VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			e.ID, e.MemberID, e.MemberName, e.Date, e.Timestamp,
			e.Summary, e.Yesterday, e.Today, e.Blockers,
			pq.Array(e.Tickets), pq.Array(e.PullRequests), e.RawNotes)
		if err != nil {
			r.Log.Error("SaveEntries: insert failed", zap.String("entry_id", e.ID), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		r.Log.Error("SaveEntries: commit failed", zap.Error(err))
		return err
	}
	r.Log.Info("SaveEntries: success", zap.Int("count", len(entries)))
	return nil
}

func (r *Repositories) EntriesByMember(ctx context.Context, memberID string, windowDays int) ([]model.StandupEntry, error) {
	r.Log.Debug("EntriesByMember: start", zap.String("member_id", memberID), zap.Int("window_days", windowDays))

	cutoff := time.Now().AddDate(0, 0, -windowDays).Format("2006-01-02")
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, member_id, member_name, entry_date, created_at,
               summary, yesterday, today, blockers, tickets, pull_requests, raw_notes
        FROM standup_entries
        WHERE member_id = $1 AND entry_date >= $2
        ORDER BY entry_date DESC, created_at DESC
    `, memberID, cutoff)
	if err != nil {
		r.Log.Error("EntriesByMember: query failed", zap.Error(err))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.Log.Error("EntriesByMember: close rows failed", zap.Error(err))
		}
	}()

	var out []model.StandupEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			r.Log.Error("EntriesByMember: scan failed", zap.Error(err))
			return nil, err
		}
		out = append(out, e)
	}
	r.Log.Debug("EntriesByMember: success", zap.Int("count", len(out)))
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(rows rowScanner) (model.StandupEntry, error) {
	var e model.StandupEntry
	err := rows.Scan(&e.ID, &e.MemberID, &e.MemberName, &e.Date, &e.Timestamp,
		&e.Summary, &e.Yesterday, &e.Today, &e.Blockers,
		pq.Array(&e.Tickets), pq.Array(&e.PullRequests), &e.RawNotes)
	return e, err
}
