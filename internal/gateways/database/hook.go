package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questpilot/hackquest-bot/questpilot/logger"
	"github.com/uptrace/bun"
)

type queryHook struct{}

func (queryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (queryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	err := event.Err
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	logger.LogQuery(event.Operation(), event.Query, time.Since(event.StartTime), err)
}
