package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/osintworks/recon-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS investigations (
	id         TEXT PRIMARY KEY,
	target     TEXT NOT NULL,
	strategy   TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'running',
	error      TEXT,
	started_at DATETIME NOT NULL,
	ended_at   DATETIME
);

CREATE TABLE IF NOT EXISTS results (
	id               TEXT PRIMARY KEY,
	investigation_id TEXT NOT NULL REFERENCES investigations(id),
	data_type        TEXT NOT NULL,
	value            TEXT NOT NULL,
	confidence       REAL NOT NULL,
	payload          TEXT NOT NULL,
	collected_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
	id               TEXT PRIMARY KEY,
	investigation_id TEXT NOT NULL UNIQUE REFERENCES investigations(id),
	report           TEXT NOT NULL,
	analyzed_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_investigations_status ON investigations(status);
CREATE INDEX IF NOT EXISTS idx_investigations_target ON investigations(target);
CREATE INDEX IF NOT EXISTS idx_results_investigation_id ON results(investigation_id);
CREATE INDEX IF NOT EXISTS idx_results_data_type ON results(data_type);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateInvestigation(ctx context.Context, inv model.Investigation) error {
	strategyJSON, err := json.Marshal(inv.Strategy)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal strategy")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO investigations (id, target, strategy, status, error, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Strategy.Target.PrimaryIdentifier, string(strategyJSON), string(inv.Status), inv.Error, inv.StartedAt,
	)
	return eris.Wrap(err, "sqlite: insert investigation")
}

func (s *SQLiteStore) FinishInvestigation(ctx context.Context, id string, status model.InvestigationStatus, errMsg string, endedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE investigations SET status = ?, error = ?, ended_at = ? WHERE id = ?`,
		string(status), errMsg, endedAt, id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish investigation %s", id)
	}
	return checkRowsAffected(res, "investigation", id)
}

func (s *SQLiteStore) GetInvestigation(ctx context.Context, id string) (*model.Investigation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, strategy, status, error, started_at, ended_at FROM investigations WHERE id = ?`,
		id,
	)
	return scanInvestigation(row)
}

func (s *SQLiteStore) ListInvestigations(ctx context.Context, filter InvestigationFilter) ([]model.Investigation, error) {
	query := `SELECT id, strategy, status, error, started_at, ended_at FROM investigations WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Target != "" {
		query += ` AND target LIKE ?`
		args = append(args, "%"+filter.Target+"%")
	}
	query += ` ORDER BY started_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list investigations")
	}
	defer rows.Close()

	var out []model.Investigation
	for rows.Next() {
		inv, err := scanInvestigation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list investigations iterate")
}

func (s *SQLiteStore) SaveResults(ctx context.Context, investigationID string, results []model.IntelligenceResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin save results")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (id, investigation_id, data_type, value, confidence, payload, collected_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert result")
	}
	defer stmt.Close()

	for _, r := range results {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		r.InvestigationID = investigationID

		payload, err := json.Marshal(r)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal result")
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, investigationID, r.DataType, r.Value, r.Confidence, string(payload), r.Timestamp,
		); err != nil {
			return eris.Wrap(err, "sqlite: insert result")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit save results")
}

func (s *SQLiteStore) GetResults(ctx context.Context, investigationID string) ([]model.IntelligenceResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM results WHERE investigation_id = ? ORDER BY collected_at, id`,
		investigationID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get results")
	}
	defer rows.Close()

	var out []model.IntelligenceResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan result")
		}
		var r model.IntelligenceResult
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal result")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: get results iterate")
}

func (s *SQLiteStore) SaveAnalysis(ctx context.Context, analysis model.IntelligenceAnalysis) error {
	report, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal analysis")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, investigation_id, report, analyzed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (investigation_id) DO UPDATE SET report = excluded.report, analyzed_at = excluded.analyzed_at`,
		analysis.ID, analysis.InvestigationID, string(report), analysis.AnalyzedAt,
	)
	return eris.Wrap(err, "sqlite: save analysis")
}

func (s *SQLiteStore) GetAnalysis(ctx context.Context, investigationID string) (*model.IntelligenceAnalysis, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT report FROM analyses WHERE investigation_id = ?`,
		investigationID,
	)

	var report string
	err := row.Scan(&report)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get analysis")
	}

	var analysis model.IntelligenceAnalysis
	if err := json.Unmarshal([]byte(report), &analysis); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal analysis")
	}
	return &analysis, nil
}

func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin purge")
	}
	defer tx.Rollback() //nolint:errcheck

	sub := `SELECT id FROM investigations WHERE started_at < ? AND status != 'running'`
	if _, err := tx.ExecContext(ctx, `DELETE FROM analyses WHERE investigation_id IN (`+sub+`)`, cutoff); err != nil {
		return 0, eris.Wrap(err, "sqlite: purge analyses")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE investigation_id IN (`+sub+`)`, cutoff); err != nil {
		return 0, eris.Wrap(err, "sqlite: purge results")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM investigations WHERE started_at < ? AND status != 'running'`, cutoff)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: purge investigations")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: purge rows affected")
	}

	return int(n), eris.Wrap(tx.Commit(), "sqlite: commit purge")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanInvestigation(row scannable) (*model.Investigation, error) {
	var inv model.Investigation
	var strategyJSON, status string
	var errMsg sql.NullString
	var endedAt sql.NullTime

	err := row.Scan(&inv.ID, &strategyJSON, &status, &errMsg, &inv.StartedAt, &endedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("investigation not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan investigation")
	}

	if err := json.Unmarshal([]byte(strategyJSON), &inv.Strategy); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal strategy")
	}
	inv.Status = model.InvestigationStatus(status)
	if errMsg.Valid {
		inv.Error = errMsg.String
	}
	if endedAt.Valid {
		t := endedAt.Time
		inv.EndedAt = &t
	}
	return &inv, nil
}
