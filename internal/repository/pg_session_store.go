package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limbo/cherries/pkg/cleanup"
	"github.com/limbo/cherries/pkg/entity"
)

const (
	selectSessionQuery = `SELECT key, value FROM client_session_values WHERE profile = $1;`
	deleteSessionQuery = `DELETE FROM client_session_values WHERE profile = $1;`
	insertSessionQuery = `INSERT INTO client_session_values (profile, key, value) VALUES ($1, $2, $3), ($1, $4, $5), ($1, $6, $7), ($1, $8, $9);`
)

// PgSessionStore keeps one row per session key, scoped by profile, so several
// client profiles can share a database.
type PgSessionStore struct {
	conn    PgConnection
	profile string
}

func NewPgSessionStore(ctx context.Context, cfg DBConfig, profile string) (*PgSessionStore, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("creating connection for session store error: " + err.Error())
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.New("error while pinging connection for session store: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PgSessionStore{
		conn:    pool,
		profile: profile,
	}, nil
}

func NewPgSessionStoreWithConn(conn PgConnection, profile string) *PgSessionStore {
	return &PgSessionStore{
		conn:    conn,
		profile: profile,
	}
}

func (ps *PgSessionStore) Load(ctx context.Context) (*entity.Session, error) {
	rows, err := ps.conn.Query(ctx, selectSessionQuery, ps.profile)
	if err != nil {
		return nil, errors.New("loading session error: " + err.Error())
	}
	defer rows.Close()
	values := make(map[string]string, len(SessionKeys))
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, errors.New("scanning session row error: " + err.Error())
		}
		values[key] = value
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("loading session error: " + err.Error())
	}
	return decodeSession(values)
}

func (ps *PgSessionStore) Save(ctx context.Context, session *entity.Session) error {
	encoded, err := encodeSession(session)
	if err != nil {
		return err
	}
	args := make([]any, 0, 1+2*len(SessionKeys))
	args = append(args, ps.profile)
	for i, key := range SessionKeys {
		args = append(args, key, encoded[i])
	}

	tx, err := ps.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning session tx error: " + err.Error())
	}
	if _, err = tx.Exec(ctx, deleteSessionQuery, ps.profile); err != nil {
		_ = tx.Rollback(ctx)
		return errors.New("replacing session error: " + err.Error())
	}
	if _, err = tx.Exec(ctx, insertSessionQuery, args...); err != nil {
		_ = tx.Rollback(ctx)
		return errors.New("saving session error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing session error: " + err.Error())
	}
	return nil
}

func (ps *PgSessionStore) Clear(ctx context.Context) error {
	if _, err := ps.conn.Exec(ctx, deleteSessionQuery, ps.profile); err != nil {
		return errors.New("clearing session error: " + err.Error())
	}
	return nil
}
