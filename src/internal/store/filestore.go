package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

type fileDocument struct {
	StandupEntries []model.StandupEntry  `json:"standup_entries"`
	TeamMembers    []model.TeamMember    `json:"team_members"`
	AgentQuestions []model.AgentQuestion `json:"agent_questions"`
}

// FileStore keeps all collections in a single JSON document. Before
// every overwrite the current document is copied into the backup
// directory.
type FileStore struct {
	path      string
	backupDir string
	log       *zap.Logger
}

func NewFileStore(path, backupDir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &FileStore{path: path, backupDir: backupDir, log: logger}, nil
}

func (f *FileStore) LoadEntries(ctx context.Context) ([]model.StandupEntry, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc.StandupEntries, nil
}

func (f *FileStore) SaveEntries(ctx context.Context, entries []model.StandupEntry) error {
	return f.update(func(doc *fileDocument) { doc.StandupEntries = entries })
}

func (f *FileStore) LoadMembers(ctx context.Context) ([]model.TeamMember, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc.TeamMembers, nil
}

func (f *FileStore) SaveMembers(ctx context.Context, members []model.TeamMember) error {
	return f.update(func(doc *fileDocument) { doc.TeamMembers = members })
}

func (f *FileStore) LoadQuestions(ctx context.Context) ([]model.AgentQuestion, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc.AgentQuestions, nil
}

func (f *FileStore) SaveQuestions(ctx context.Context, questions []model.AgentQuestion) error {
	return f.update(func(doc *fileDocument) { doc.AgentQuestions = questions })
}

func (f *FileStore) EntriesByMember(ctx context.Context, memberID string, windowDays int) ([]model.StandupEntry, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays).Format("2006-01-02")

	var out []model.StandupEntry
	for _, e := range doc.StandupEntries {
		if e.MemberID == memberID && e.Date >= cutoff {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (f *FileStore) read() (fileDocument, error) {
	var doc fileDocument
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("read %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *FileStore) update(apply func(*fileDocument)) error {
	doc, err := f.read()
	if err != nil {
		return err
	}
	apply(&doc)

	if err := f.backup(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	f.log.Debug("update: document written", zap.String("path", f.path))
	return nil
}

func (f *FileStore) backup() error {
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read for backup: %w", err)
	}

	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format(time.RFC3339Nano))
	name := filepath.Join(f.backupDir, "backup-"+stamp+filepath.Ext(f.path))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	f.log.Debug("backup: written", zap.String("path", name))
	return nil
}
