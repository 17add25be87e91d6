package history

import (
	"chai/internal/object"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one recorded program execution.
type Run struct {
	ID        int64
	Program   string
	StartedAt time.Time
	Duration  time.Duration
	Status    string
	ErrorKind string // empty unless the run failed with a runtime error
	Message   string
}

// NewRun describes a finished execution of program; err is what it failed with.
func NewRun(program string, started time.Time, err error) Run {
	run := Run{
		Program:   program,
		StartedAt: started,
		Duration:  time.Since(started),
		Status:    StatusOK,
	}
	if err != nil {
		run.Status = StatusFailed
		run.ErrorKind = object.KindOf(err)
		run.Message = err.Error()
	}
	return run
}

type dialect struct {
	driver   string
	idColumn string
	numbered bool // $1 placeholders instead of ?
}

var dialects = map[string]dialect{
	"sqlite3":  {driver: "sqlite3", idColumn: "INTEGER PRIMARY KEY AUTOINCREMENT"},
	"mysql":    {driver: "mysql", idColumn: "BIGINT AUTO_INCREMENT PRIMARY KEY"},
	"postgres": {driver: "postgres", idColumn: "BIGSERIAL PRIMARY KEY", numbered: true},
}

// rebind rewrites ? placeholders for drivers that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var out strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			out.WriteString("$" + strconv.Itoa(n))
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// Store keeps run history in a SQL database.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// ParseDSN picks the driver from the DSN scheme: sqlite3:// (or a bare file
// path), mysql:// or postgres://. It returns the driver name and the
// connection string in that driver's format.
func ParseDSN(dsn string) (string, string, error) {
	scheme, rest, found := strings.Cut(dsn, "://")
	if !found {
		return "sqlite3", dsn, nil
	}

	switch scheme {
	case "sqlite", "sqlite3":
		return "sqlite3", rest, nil
	case "postgres", "postgresql":
		return "postgres", dsn, nil
	case "mysql":
		u, err := url.Parse(dsn)
		if err != nil {
			return "", "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		cfg := mysql.NewConfig()
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
		if q := u.Query(); len(q) > 0 {
			cfg.Params = map[string]string{}
			for k := range q {
				cfg.Params[k] = q.Get(k)
			}
		}
		return "mysql", cfg.FormatDSN(), nil
	}
	return "", "", fmt.Errorf("unsupported history database scheme %q", scheme)
}

// Open connects to the database named by dsn and creates the history table
// if it does not exist.
func Open(ctx context.Context, dsn string) (*Store, error) {
	driver, conn, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &Store{db: db, dialect: dialects[driver]}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("opened run history", slog.String("driver", driver))
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS chai_runs (
	id ` + s.dialect.idColumn + `,
	program VARCHAR(1024) NOT NULL,
	started_at BIGINT NOT NULL,
	duration_ms BIGINT NOT NULL,
	status VARCHAR(16) NOT NULL,
	error_kind VARCHAR(32) NOT NULL,
	message TEXT NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, run Run) error {
	query := s.dialect.rebind(`INSERT INTO chai_runs
	(program, started_at, duration_ms, status, error_kind, message)
	VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		run.Program,
		run.StartedAt.UnixMilli(),
		run.Duration.Milliseconds(),
		run.Status,
		run.ErrorKind,
		run.Message)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	slog.Debug("recorded run",
		slog.String("program", run.Program),
		slog.String("status", run.Status),
		slog.String("error_kind", run.ErrorKind))
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := s.dialect.rebind(`SELECT id, program, started_at, duration_ms, status, error_kind, message
	FROM chai_runs ORDER BY id DESC LIMIT ?`)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var started, duration int64
		if err := rows.Scan(&run.ID, &run.Program, &started, &duration, &run.Status, &run.ErrorKind, &run.Message); err != nil {
			return nil, fmt.Errorf("failed to read run: %w", err)
		}
		run.StartedAt = time.UnixMilli(started)
		run.Duration = time.Duration(duration) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Format renders a run as one line of the -history listing.
func (r Run) Format() string {
	line := fmt.Sprintf("%4d  %s  %6dms  %-6s  %s",
		r.ID, r.StartedAt.Format(time.DateTime), r.Duration.Milliseconds(), r.Status, r.Program)
	if r.ErrorKind != "" {
		line += "  " + r.ErrorKind
	}
	return line
}
