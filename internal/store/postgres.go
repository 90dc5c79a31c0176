package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/osintworks/recon-cli/internal/db"
	"github.com/osintworks/recon-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_investigation": `INSERT INTO investigations (id, target, strategy, status, error, started_at) VALUES ($1, $2, $3, $4, $5, $6)`,
	"finish_investigation": `UPDATE investigations SET status = $1, error = $2, ended_at = $3 WHERE id = $4`,
	"get_investigation":    `SELECT id, strategy, status, error, started_at, ended_at FROM investigations WHERE id = $1`,
	"get_results":          `SELECT payload FROM results WHERE investigation_id = $1 ORDER BY collected_at, id`,
	"get_analysis":         `SELECT report FROM analyses WHERE investigation_id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS investigations (
	id         TEXT PRIMARY KEY,
	target     TEXT NOT NULL,
	strategy   JSONB NOT NULL,
	status     TEXT NOT NULL DEFAULT 'running',
	error      TEXT,
	started_at TIMESTAMPTZ NOT NULL,
	ended_at   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS results (
	id               TEXT PRIMARY KEY,
	investigation_id TEXT NOT NULL REFERENCES investigations(id),
	data_type        TEXT NOT NULL,
	value            TEXT NOT NULL,
	confidence       DOUBLE PRECISION NOT NULL,
	payload          JSONB NOT NULL,
	collected_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
	id               TEXT PRIMARY KEY,
	investigation_id TEXT NOT NULL UNIQUE REFERENCES investigations(id),
	report           JSONB NOT NULL,
	analyzed_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_investigations_status ON investigations(status);
CREATE INDEX IF NOT EXISTS idx_investigations_target ON investigations(target);
CREATE INDEX IF NOT EXISTS idx_results_investigation_id ON results(investigation_id);
CREATE INDEX IF NOT EXISTS idx_results_data_type ON results(data_type);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateInvestigation(ctx context.Context, inv model.Investigation) error {
	strategyJSON, err := json.Marshal(inv.Strategy)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal strategy")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO investigations (id, target, strategy, status, error, started_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.Strategy.Target.PrimaryIdentifier, strategyJSON, string(inv.Status), inv.Error, inv.StartedAt,
	)
	return eris.Wrap(err, "postgres: insert investigation")
}

func (s *PostgresStore) FinishInvestigation(ctx context.Context, id string, status model.InvestigationStatus, errMsg string, endedAt time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE investigations SET status = $1, error = $2, ended_at = $3 WHERE id = $4`,
		string(status), errMsg, endedAt, id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: finish investigation %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("investigation not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) GetInvestigation(ctx context.Context, id string) (*model.Investigation, error) {
	var inv model.Investigation
	var strategyJSON []byte
	var status string
	var errMsg *string
	var endedAt *time.Time

	err := s.pool.QueryRow(ctx,
		`SELECT id, strategy, status, error, started_at, ended_at FROM investigations WHERE id = $1`,
		id,
	).Scan(&inv.ID, &strategyJSON, &status, &errMsg, &inv.StartedAt, &endedAt)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get investigation %s", id)
	}

	if err := json.Unmarshal(strategyJSON, &inv.Strategy); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal strategy")
	}
	inv.Status = model.InvestigationStatus(status)
	if errMsg != nil {
		inv.Error = *errMsg
	}
	inv.EndedAt = endedAt
	return &inv, nil
}

func (s *PostgresStore) ListInvestigations(ctx context.Context, filter InvestigationFilter) ([]model.Investigation, error) {
	query := `SELECT id, strategy, status, error, started_at, ended_at FROM investigations WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	if filter.Target != "" {
		query += fmt.Sprintf(` AND target ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Target+"%")
		argIdx++
	}
	query += ` ORDER BY started_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list investigations")
	}
	defer rows.Close()

	var out []model.Investigation
	for rows.Next() {
		var inv model.Investigation
		var strategyJSON []byte
		var status string
		var errMsg *string
		var endedAt *time.Time

		if err := rows.Scan(&inv.ID, &strategyJSON, &status, &errMsg, &inv.StartedAt, &endedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan investigation")
		}
		if err := json.Unmarshal(strategyJSON, &inv.Strategy); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal strategy")
		}
		inv.Status = model.InvestigationStatus(status)
		if errMsg != nil {
			inv.Error = *errMsg
		}
		inv.EndedAt = endedAt
		out = append(out, inv)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list investigations iterate")
}

var resultColumns = []string{"id", "investigation_id", "data_type", "value", "confidence", "payload", "collected_at"}

func (s *PostgresStore) SaveResults(ctx context.Context, investigationID string, results []model.IntelligenceResult) error {
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		r.InvestigationID = investigationID

		payload, err := json.Marshal(r)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal result")
		}
		rows = append(rows, []any{r.ID, investigationID, r.DataType, r.Value, r.Confidence, payload, r.Timestamp})
	}

	_, err := db.CopyFrom(ctx, s.pool, "results", resultColumns, rows)
	return eris.Wrap(err, "postgres: save results")
}

func (s *PostgresStore) GetResults(ctx context.Context, investigationID string) ([]model.IntelligenceResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT payload FROM results WHERE investigation_id = $1 ORDER BY collected_at, id`,
		investigationID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get results")
	}
	defer rows.Close()

	var out []model.IntelligenceResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan result")
		}
		var r model.IntelligenceResult
		if err := json.Unmarshal(payload, &r); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal result")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: get results iterate")
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, analysis model.IntelligenceAnalysis) error {
	report, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal analysis")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analyses (id, investigation_id, report, analyzed_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (investigation_id) DO UPDATE SET report = $3, analyzed_at = $4`,
		analysis.ID, analysis.InvestigationID, report, analysis.AnalyzedAt,
	)
	return eris.Wrap(err, "postgres: save analysis")
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, investigationID string) (*model.IntelligenceAnalysis, error) {
	var report []byte
	err := s.pool.QueryRow(ctx,
		`SELECT report FROM analyses WHERE investigation_id = $1`,
		investigationID,
	).Scan(&report)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get analysis")
	}

	var analysis model.IntelligenceAnalysis
	if err := json.Unmarshal(report, &analysis); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal analysis")
	}
	return &analysis, nil
}

func (s *PostgresStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM analyses WHERE investigation_id IN
		 (SELECT id FROM investigations WHERE started_at < $1 AND status != 'running')`,
		cutoff,
	); err != nil {
		return 0, eris.Wrap(err, "postgres: purge analyses")
	}
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM results WHERE investigation_id IN
		 (SELECT id FROM investigations WHERE started_at < $1 AND status != 'running')`,
		cutoff,
	); err != nil {
		return 0, eris.Wrap(err, "postgres: purge results")
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM investigations WHERE started_at < $1 AND status != 'running'`,
		cutoff,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: purge investigations")
	}
	return int(tag.RowsAffected()), nil
}
