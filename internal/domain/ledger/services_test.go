package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/questpilot/hackquest-bot/internal/domain/ledger"
	"github.com/questpilot/hackquest-bot/internal/domain/ledger/mock"
	"go.uber.org/mock/gomock"
)

var (
	quest = ledger.Quest("57f0eacd", "Got 2000 coins")
	quiz  = ledger.Quiz("page-1", "Intro")
	errDB = errors.New("disk I/O error")
)

func Test_service_IsCompleted(t *testing.T) {
	tests := []struct {
		name    string
		record  *ledger.Record
		repoErr error
		want    bool
		wantErr bool
	}{
		{name: "Absent", record: nil, want: false},
		{name: "Pending", record: &ledger.Record{UserID: "u1", Target: quest}, want: false},
		{name: "Completed", record: &ledger.Record{UserID: "u1", Target: quest, Completed: true}, want: true},
		{name: "Storage failure", repoErr: errDB, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			repo.EXPECT().
				Get(gomock.Any(), "u1", quest).
				Return(tt.record, tt.repoErr)

			got, err := ledger.NewService(repo).IsCompleted(context.Background(), "u1", quest)
			if (err != nil) != tt.wantErr {
				t.Errorf("service.IsCompleted() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !ledger.IsStorageError(err) {
				t.Errorf("service.IsCompleted() error = %v, want StorageError", err)
			}
			if got != tt.want {
				t.Errorf("service.IsCompleted() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_service_Ensure(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		InsertIfAbsent(gomock.Any(), ledger.Record{UserID: "u1", Target: quiz}).
		Return(nil)

	if err := ledger.NewService(repo).Ensure(context.Background(), "u1", quiz); err != nil {
		t.Errorf("service.Ensure() error = %v", err)
	}
}

func Test_service_MarkCompleted(t *testing.T) {
	tests := []struct {
		name    string
		target  ledger.Target
		repoErr error
		calls   int
		wantErr bool
	}{
		{name: "Success", target: quiz, calls: 1},
		{name: "Storage failure", target: quiz, repoErr: errDB, calls: 1, wantErr: true},
		{name: "Unknown kind", target: ledger.Target{ID: "x"}, calls: 0, wantErr: true},
		{name: "Empty id", target: ledger.Quest("", ""), calls: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			repo.EXPECT().
				Upsert(gomock.Any(), ledger.Record{
					UserID:    "u1",
					Target:    tt.target,
					Completed: true,
					Reward:    15,
					Exp:       40,
				}).
				Return(tt.repoErr).
				Times(tt.calls)

			err := ledger.NewService(repo).MarkCompleted(context.Background(), "u1", tt.target, 15, 40)
			if (err != nil) != tt.wantErr {
				t.Errorf("service.MarkCompleted() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !ledger.IsStorageError(err) {
				t.Errorf("service.MarkCompleted() error = %v, want StorageError", err)
			}
		})
	}
}

func Test_service_CountCompleted(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().CountCompleted(gomock.Any(), "u1", ledger.KindQuest).Return(12, nil)
	repo.EXPECT().CountCompleted(gomock.Any(), "u1", ledger.KindQuiz).Return(0, errDB)

	s := ledger.NewService(repo)

	got, err := s.CountCompleted(context.Background(), "u1", ledger.KindQuest)
	if err != nil || got != 12 {
		t.Errorf("service.CountCompleted(quest) = %v, %v, want 12, nil", got, err)
	}

	_, err = s.CountCompleted(context.Background(), "u1", ledger.KindQuiz)
	if !errors.Is(err, errDB) {
		t.Errorf("service.CountCompleted(quiz) error = %v, want %v", err, errDB)
	}
}

func TestPhaseReward(t *testing.T) {
	got := ledger.PhaseReward(3)
	want := ledger.Target{Kind: ledger.KindQuest, ID: "Phase 3 Reward", Name: "Phase 3 Reward"}
	if got != want {
		t.Errorf("PhaseReward() = %v, want %v", got, want)
	}
}
