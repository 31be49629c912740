package progression

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
	"github.com/questpilot/hackquest-bot/internal/domain/ledger"
	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/config"
)

// Service holds what account runs share: storage, options and the
// question-count cache. Quiz pages are identical for every account, so one
// account's lookup serves the rest.
type Service struct {
	ledger    ledger.Ledger
	users     UserStore
	opts      Options
	observer  Observer
	questions *lru.Cache
	quests    []Quest
}

func NewService(l ledger.Ledger, users UserStore, opts Options, observer Observer) (*Service, error) {
	cache, err := lru.New(config.QuestionCountCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create question cache: %w", err)
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Service{
		ledger:    l,
		users:     users,
		opts:      opts,
		observer:  observer,
		questions: cache,
		quests:    Quests,
	}, nil
}

// NewRunner binds the service to one account. The runner owns a fresh
// session and must not be shared between goroutines.
func (s *Service) NewRunner(index int, actions platform.Actions, wallet platform.Wallet, log *slog.Logger) *Runner {
	return &Runner{
		svc:     s,
		index:   index,
		actions: actions,
		wallet:  wallet,
		session: &platform.Session{},
		log:     log,
	}
}

func (s *Service) cachedQuestionCount(quizID string) (int, bool) {
	v, ok := s.questions.Get(quizID)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

func (s *Service) rememberQuestionCount(quizID string, n int) {
	s.questions.Add(quizID, n)
}

// Summary is the per-user ledger rollup shown by the stats command.
type Summary struct {
	User    User
	Quests  ledger.Totals
	Quizzes ledger.Totals
}

func (s *Service) Summarize(ctx context.Context, user User) (Summary, error) {
	quests, err := s.ledger.Totals(ctx, user.ID, ledger.KindQuest)
	if err != nil {
		return Summary{}, err
	}
	quizzes, err := s.ledger.Totals(ctx, user.ID, ledger.KindQuiz)
	if err != nil {
		return Summary{}, err
	}
	return Summary{User: user, Quests: quests, Quizzes: quizzes}, nil
}
