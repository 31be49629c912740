package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/questpilot/hackquest-bot/internal/gateways/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
	sqliteBusyTimeoutMs  = 5000
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DBConfig struct {
	Driver   string `toml:"driver" validate:"omitempty,oneof=sqlite postgres"`
	Path     string `toml:"path"`
	DSN      string `toml:"dsn" validate:"required_if=Driver postgres"`
	PoolSize int    `toml:"pool_size" validate:"gte=0"`
}

type DB struct {
	bunDB  *bun.DB
	driver string
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	var (
		db  *bun.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		db, err = openPostgres(ctx, cfg)
	case DriverSQLite, "":
		db, err = openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	db.AddQueryHook(queryHook{})
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	return &DB{bunDB: db, driver: cfg.Driver}, nil
}

// openSQLite keeps a single connection so the pragmas below hold for every
// query and concurrent accounts queue on the pool instead of on SQLITE_BUSY.
func openSQLite(ctx context.Context, cfg DBConfig) (*bun.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", sqliteBusyTimeoutMs),
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	return db, nil
}

func openPostgres(ctx context.Context, cfg DBConfig) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(defaultConnTimeout),
	))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}

	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
		err = sqldb.PingContext(pingCtx)
		cancel()
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Close() {
	if err := db.bunDB.Close(); err != nil {
		slog.Error("Failed to close database",
			slog.String("type", "db"),
			slog.Any("error", err))
	}
}

func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []struct {
		model       interface{}
		foreignKeys []string
	}{
		{model: (*models.User)(nil)},
		{model: (*models.Quest)(nil)},
		{model: (*models.Quiz)(nil)},
		{
			model: (*models.UserQuest)(nil),
			foreignKeys: []string{
				`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				`("quest_id") REFERENCES "quests" ("id") ON DELETE CASCADE`,
			},
		},
		{
			model: (*models.UserQuiz)(nil),
			foreignKeys: []string{
				`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				`("quiz_id") REFERENCES "quizzes" ("id") ON DELETE CASCADE`,
			},
		},
	}

	for _, table := range tables {
		query := db.bunDB.NewCreateTable().
			Model(table.model).
			IfNotExists()
		for _, fk := range table.foreignKeys {
			query = query.ForeignKey(fk)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", table.model, err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at);",
		"CREATE INDEX IF NOT EXISTS idx_user_quests_user_completed ON user_quests(user_id, is_completed);",
		"CREATE INDEX IF NOT EXISTS idx_user_quizzes_user_completed ON user_quizzes(user_id, is_completed);",
	}
	for _, index := range indexes {
		if _, err := db.bunDB.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Debug("Database schema ready",
		slog.String("type", "db"),
		slog.String("driver", db.driver))
	return nil
}
