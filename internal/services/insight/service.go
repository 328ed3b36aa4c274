package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hawk5760/calmora-well/internal/services/journal"
	"github.com/Hawk5760/calmora-well/internal/services/mood"
)

// Insight is the structured wellness reflection shown on the dashboard.
type Insight struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
	MoodTrend   string   `json:"mood_trend"`
	Generated   bool     `json:"generated"`
}

// Completer is the narrow contract to the language-model backend.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// MoodSource and JournalSource are the read-only slices of the other
// services this one needs.
type MoodSource interface {
	List(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]mood.Entry, error)
}

type JournalSource interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]journal.Entry, error)
}

// Service builds a prompt from recent activity, asks the model for strict
// JSON and coerces whatever comes back. Model failures never fail the
// request: the user gets the canned fallback instead.
type Service struct {
	completer Completer
	moods     MoodSource
	journals  JournalSource
	logger    *zap.Logger
}

func New(completer Completer, moods MoodSource, journals JournalSource, logger *zap.Logger) *Service {
	return &Service{completer: completer, moods: moods, journals: journals, logger: logger}
}

const (
	lookbackDays  = 14
	journalTitles = 5
)

// Generate produces an insight for the user's last two weeks.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, now time.Time) (*Insight, error) {
	entries, err := s.moods.List(ctx, userID, now.AddDate(0, 0, -lookbackDays), 100)
	if err != nil {
		return nil, fmt.Errorf("load moods: %w", err)
	}
	pages, err := s.journals.List(ctx, userID, journalTitles, 0)
	if err != nil {
		return nil, fmt.Errorf("load journal titles: %w", err)
	}

	if s.completer == nil {
		return fallbackInsight(), nil
	}

	reply, err := s.completer.Complete(ctx, buildPrompt(entries, pages))
	if err != nil {
		s.logger.Warn("insight completion failed, using fallback",
			zap.String("user_id", userID.String()), zap.Error(err))
		return fallbackInsight(), nil
	}
	ins, err := parseInsight(reply)
	if err != nil {
		s.logger.Warn("insight reply unparseable, using fallback",
			zap.String("user_id", userID.String()), zap.Error(err))
		return fallbackInsight(), nil
	}
	return ins, nil
}

func buildPrompt(entries []mood.Entry, pages []journal.Entry) string {
	var b strings.Builder
	b.WriteString("You are a supportive mental-wellness assistant. ")
	b.WriteString("Based on the user's recent mood log and journal titles, respond with ONLY a JSON object ")
	b.WriteString(`of the shape {"summary": string, "suggestions": [string, string, string], "mood_trend": "improving"|"stable"|"declining"}.`)
	b.WriteString("\n\nMood log (most recent first):\n")
	if len(entries) == 0 {
		b.WriteString("(no entries)\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %d/10 %s", e.CreatedAt.Format("Jan 2"), e.Score, e.Label)
		if e.Note != "" {
			fmt.Fprintf(&b, " (%s)", e.Note)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nRecent journal titles:\n")
	if len(pages) == 0 {
		b.WriteString("(no entries)\n")
	}
	for _, p := range pages {
		fmt.Fprintf(&b, "- %s\n", p.Title)
	}
	return b.String()
}

// jsonBlock grabs the first {...} blob in the reply; models often wrap the
// JSON in prose or markdown fences despite instructions.
var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

func parseInsight(reply string) (*Insight, error) {
	blob := jsonBlock.FindString(reply)
	if blob == "" {
		return nil, fmt.Errorf("no JSON object in model reply")
	}
	var ins Insight
	if err := json.Unmarshal([]byte(blob), &ins); err != nil {
		return nil, fmt.Errorf("decode insight: %w", err)
	}
	if strings.TrimSpace(ins.Summary) == "" {
		return nil, fmt.Errorf("insight missing summary")
	}
	switch ins.MoodTrend {
	case "improving", "stable", "declining":
	default:
		ins.MoodTrend = "stable"
	}
	ins.Generated = true
	return &ins, nil
}

func fallbackInsight() *Insight {
	return &Insight{
		Summary: "You've been checking in with yourself, and that consistency matters more than any single day's mood.",
		Suggestions: []string{
			"Take five minutes today for slow, deep breathing.",
			"Write down one thing you're grateful for.",
			"Step outside for a short walk if you can.",
		},
		MoodTrend: "stable",
		Generated: false,
	}
}
