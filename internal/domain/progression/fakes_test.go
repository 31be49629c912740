package progression

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/questpilot/hackquest-bot/internal/domain/ledger"
	"github.com/questpilot/hackquest-bot/internal/domain/platform/mock"
	"go.uber.org/mock/gomock"
)

type recordKey struct {
	userID string
	kind   ledger.Kind
	id     string
}

// memRepository is an in-memory ledger.Repository.
type memRepository struct {
	mu      sync.Mutex
	records map[recordKey]ledger.Record
}

func newMemRepository() *memRepository {
	return &memRepository{records: make(map[recordKey]ledger.Record)}
}

func keyOf(rec ledger.Record) recordKey {
	return recordKey{userID: rec.UserID, kind: rec.Target.Kind, id: rec.Target.ID}
}

func (m *memRepository) InsertIfAbsent(_ context.Context, rec ledger.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[keyOf(rec)]; !ok {
		m.records[keyOf(rec)] = rec
	}
	return nil
}

func (m *memRepository) Get(_ context.Context, userID string, target ledger.Target) (*ledger.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[recordKey{userID: userID, kind: target.Kind, id: target.ID}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memRepository) Upsert(_ context.Context, rec ledger.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[keyOf(rec)] = rec
	return nil
}

func (m *memRepository) CountCompleted(_ context.Context, userID string, kind ledger.Kind) (int, error) {
	t, _ := m.Totals(context.Background(), userID, kind)
	return t.Completed, nil
}

func (m *memRepository) Totals(_ context.Context, userID string, kind ledger.Kind) (ledger.Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t ledger.Totals
	for k, rec := range m.records {
		if k.userID != userID || k.kind != kind || !rec.Completed {
			continue
		}
		t.Completed++
		t.Reward += rec.Reward
		t.Exp += rec.Exp
	}
	return t, nil
}

func (m *memRepository) complete(userID string, target ledger.Target) {
	m.records[recordKey{userID: userID, kind: target.Kind, id: target.ID}] = ledger.Record{
		UserID:    userID,
		Target:    target,
		Completed: true,
	}
}

// memUsers is an in-memory UserStore.
type memUsers struct {
	mu    sync.Mutex
	users map[string]User
	last  string
}

func newMemUsers(users ...User) *memUsers {
	m := &memUsers{users: make(map[string]User)}
	for _, u := range users {
		m.users[u.ID] = u
		m.last = u.ID
	}
	return m
}

func (m *memUsers) Get(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) Save(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		m.last = user.ID
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) UpdateBalance(_ context.Context, id string, balance int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.CoinBalance = balance
	m.users[id] = u
	return nil
}

func (m *memUsers) LastCreated(_ context.Context) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == "" {
		return nil, nil
	}
	u := m.users[m.last]
	return &u, nil
}

type fixture struct {
	repo    *memRepository
	users   *memUsers
	svc     *Service
	actions *mock.MockActions
	wallet  *mock.MockWallet
	runner  *Runner
}

func testOptions() Options {
	return Options{
		Retry:   RetryPolicy{Attempts: 2},
		Actions: ActionOrder,
	}
}

func newFixture(t *testing.T, opts Options, users ...User) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:    newMemRepository(),
		users:   newMemUsers(users...),
		actions: mock.NewMockActions(ctrl),
		wallet:  mock.NewMockWallet(ctrl),
	}
	svc, err := NewService(ledger.NewService(f.repo), f.users, opts, nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	f.svc = svc
	f.runner = f.newRunner()
	return f
}

func (f *fixture) newRunner() *Runner {
	return f.svc.NewRunner(0, f.actions, f.wallet, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
