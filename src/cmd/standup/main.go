package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ce-fello/standup-agent/src/internal/config"
	"github.com/ce-fello/standup-agent/src/internal/llm"
	"github.com/ce-fello/standup-agent/src/internal/model"
	"github.com/ce-fello/standup-agent/src/internal/service"
	"github.com/ce-fello/standup-agent/src/internal/store"
)

const usage = `usage: standup <command> [flags]

commands:
  submit    -member <name> (-notes <text> | -file <path>)
  answer    -id <question-id> -text <answer>
  questions [-member <member-id>]
  progress  [-days <n>]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.MustLoad()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	storage, err := store.NewFileStore(cfg.Storage.FilePath, cfg.Storage.BackupDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage init failed: %v\n", err)
		os.Exit(1)
	}
	generator := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.MaxTokens, logger)
	svc := service.NewService(storage, generator, logger, service.Options{
		LookbackDays: cfg.Agent.LookbackDays,
		MaxQuestions: cfg.Agent.MaxQuestions,
	})

	ctx := context.Background()
	switch os.Args[1] {
	case "submit":
		runSubmit(ctx, svc, os.Args[2:])
	case "answer":
		runAnswer(ctx, svc, os.Args[2:])
	case "questions":
		runQuestions(ctx, svc, os.Args[2:])
	case "progress":
		runProgress(ctx, svc, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runSubmit(ctx context.Context, svc *service.Service, args []string) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	member := fs.String("member", "", "team member name")
	notes := fs.String("notes", "", "standup notes")
	file := fs.String("file", "", "read notes from file")
	_ = fs.Parse(args)

	if *notes == "" && *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read notes file: %v\n", err)
			os.Exit(1)
		}
		*notes = string(data)
	}
	if *member == "" || *notes == "" {
		fmt.Fprintln(os.Stderr, "submit requires -member and -notes or -file")
		os.Exit(2)
	}

	entry, questions, err := svc.ProcessEntry(ctx, *notes, *member)
	if err != nil {
		fmt.Fprintf(os.Stderr, "submit failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Entry recorded for %s on %s\n", entry.MemberName, entry.Date)
	fmt.Printf("  summary:  %s\n", entry.Summary)
	if len(entry.Tickets) > 0 {
		fmt.Printf("  tickets:  %s\n", strings.Join(entry.Tickets, ", "))
	}
	if len(entry.PullRequests) > 0 {
		fmt.Printf("  PRs:      %s\n", strings.Join(entry.PullRequests, ", "))
	}
	printQuestions(questions)
}

func runAnswer(ctx context.Context, svc *service.Service, args []string) {
	fs := flag.NewFlagSet("answer", flag.ExitOnError)
	id := fs.String("id", "", "question id")
	text := fs.String("text", "", "answer text")
	_ = fs.Parse(args)

	if *id == "" || *text == "" {
		fmt.Fprintln(os.Stderr, "answer requires -id and -text")
		os.Exit(2)
	}

	followUps, err := svc.RecordAnswer(ctx, *id, *text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "answer failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Answer recorded.")
	if len(followUps) > 0 {
		fmt.Println("Follow-up questions:")
	}
	printQuestions(followUps)
}

func runQuestions(ctx context.Context, svc *service.Service, args []string) {
	fs := flag.NewFlagSet("questions", flag.ExitOnError)
	member := fs.String("member", "", "filter by member id")
	_ = fs.Parse(args)

	questions, err := svc.ListOpenQuestions(ctx, *member)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
		os.Exit(1)
	}
	if len(questions) == 0 {
		fmt.Println("No open questions.")
		return
	}
	printQuestions(questions)
}

func runProgress(ctx context.Context, svc *service.Service, args []string) {
	fs := flag.NewFlagSet("progress", flag.ExitOnError)
	days := fs.Int("days", 7, "trailing window in days")
	_ = fs.Parse(args)

	progress, err := svc.TeamProgress(ctx, *days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "progress failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Team progress (last %d days): %d members, %d entries\n", *days, progress.TotalMembers, progress.TotalEntries)
	for _, m := range progress.MemberProgress {
		fmt.Printf("  %-20s standups=%d tickets=%d blockers=%d\n", m.MemberName, m.StandupCount, m.TicketCount, m.BlockerCount)
	}
}

func printQuestions(questions []model.AgentQuestion) {
	for _, q := range questions {
		fmt.Printf("  [%s] %s\n    id: %s\n", q.QuestionType, q.Question, q.ID)
		if q.Context != "" {
			fmt.Printf("    context: %s\n", q.Context)
		}
	}
}
