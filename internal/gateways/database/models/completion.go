package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID   string `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

type UserQuest struct {
	bun.BaseModel `bun:"table:user_quests,alias:uq"`

	UserID      string    `bun:"user_id,pk"`
	QuestID     string    `bun:"quest_id,pk"`
	IsCompleted bool      `bun:"is_completed,notnull"`
	Reward      int64     `bun:"reward,notnull"`
	Exp         int64     `bun:"exp,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

type Quiz struct {
	bun.BaseModel `bun:"table:quizzes,alias:qz"`

	ID   string `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

type UserQuiz struct {
	bun.BaseModel `bun:"table:user_quizzes,alias:uqz"`

	UserID      string    `bun:"user_id,pk"`
	QuizID      string    `bun:"quiz_id,pk"`
	IsCompleted bool      `bun:"is_completed,notnull"`
	Reward      int64     `bun:"reward,notnull"`
	Exp         int64     `bun:"exp,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

// CompletionTotals is the aggregate row returned by ledger totals queries.
type CompletionTotals struct {
	Completed int   `bun:"completed"`
	Reward    int64 `bun:"reward"`
	Exp       int64 `bun:"exp"`
}
