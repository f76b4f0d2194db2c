package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/cherries/pkg/entity"
)

type SessionStoreI interface {
	// Reads the stored session. Returns errorvalues.ErrSessionNotFound when token or user is missing
	Load(ctx context.Context) (*entity.Session, error)
	// Writes every session key together, replacing the previous session
	Save(ctx context.Context, session *entity.Session) error
	// Removes every session key together. Clearing an empty store is not an error
	Clear(ctx context.Context) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

type RedisCfg struct {
	Address  string
	Password string
	DB       int
}
