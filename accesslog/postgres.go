package accesslog

import (
	"github.com/jackc/pgx"
	"github.com/pkg/errors"
)

const createTable = `create table if not exists access_log (
	id uuid primary key,
	method text not null,
	path text not null,
	status int not null,
	duration_ms bigint not null,
	started_at timestamptz not null
)`

const insertEntry = `insert into access_log (id, method, path, status, duration_ms, started_at)
values ($1, $2, $3, $4, $5, $6)`

// PostgresRecorder persists entries through a pgx connection pool.
type PostgresRecorder struct {
	db *pgx.ConnPool
}

func NewPostgresRecorder(connStr string) (*PostgresRecorder, error) {
	connConfig, err := pgx.ParseConnectionString(connStr)
	if err != nil {
		return nil, errors.Wrap(err, "parse database url")
	}

	pool, err := pgx.NewConnPool(pgx.ConnPoolConfig{
		ConnConfig:     connConfig,
		MaxConnections: 10,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}

	if _, err := pool.Exec(createTable); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "create access_log table")
	}

	return &PostgresRecorder{db: pool}, nil
}

func (r *PostgresRecorder) Record(e Entry) error {
	_, err := r.db.Exec(insertEntry, e.ID, e.Method, e.Path, e.Status, e.Duration.Milliseconds(), e.StartedAt)
	return errors.Wrap(err, "insert access_log row")
}

func (r *PostgresRecorder) Close() {
	r.db.Close()
}
