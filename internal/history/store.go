package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// decisionsTable is the name of the table holding the decision audit trail.
const decisionsTable = "relgate_decisions"

// reasonSeparator joins the ordered reason lines into one column value.
const reasonSeparator = "\n"

// DecisionStoreImpl handles durable decision storage using various database backends.
type DecisionStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.DecisionStore = &DecisionStoreImpl{} // Compile-time check

// NewDecisionStore initializes and returns a new DecisionStore based on the backend type.
func NewDecisionStore(backend schema.DatabaseBackend, connStr string) (contract.DecisionStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite history at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL history: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL history: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history
		return &DecisionStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s history: %w. %s", backend, err, connDetail)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateDecisionsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", decisionsTable, err)
	}

	return &DecisionStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// getCreateDecisionsQuery returns the CREATE TABLE query for relgate_decisions.
func getCreateDecisionsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(decisionsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				decision_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				decided_at DATETIME(6) NOT NULL,
				mode VARCHAR(20) NOT NULL,
				branch VARCHAR(255) NOT NULL,
				version VARCHAR(100),
				release_needed BOOLEAN NOT NULL,
				reasons TEXT NOT NULL,
				modules_total INT NOT NULL,
				modules_changed INT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				decision_id BIGSERIAL PRIMARY KEY,
				decided_at TIMESTAMPTZ NOT NULL,
				mode TEXT NOT NULL,
				branch TEXT NOT NULL,
				version TEXT,
				release_needed BOOLEAN NOT NULL,
				reasons TEXT NOT NULL,
				modules_total INT NOT NULL,
				modules_changed INT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				decision_id INTEGER PRIMARY KEY AUTOINCREMENT,
				decided_at TEXT NOT NULL,
				mode TEXT NOT NULL,
				branch TEXT NOT NULL,
				version TEXT,
				release_needed INTEGER NOT NULL,
				reasons TEXT NOT NULL,
				modules_total INTEGER NOT NULL,
				modules_changed INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// RecordDecision appends one decision to the history and returns its ID.
func (ds *DecisionStoreImpl) RecordDecision(record schema.DecisionRecord) (int64, error) {
	// Skip for NoneBackend
	if ds.backend == schema.NoneBackend || ds.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(decisionsTable, ds.backend)
	reasons := strings.Join(record.Reasons, reasonSeparator)

	var decisionID int64
	var err error
	switch ds.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (decided_at, mode, branch, version, release_needed, reasons, modules_total, modules_changed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING decision_id`, quotedTableName)
		err = ds.db.QueryRow(query, record.DecidedAt, record.Mode, record.Branch, record.Version,
			record.ReleaseNeeded, reasons, record.ModulesTotal, record.ModulesChanged).Scan(&decisionID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (decided_at, mode, branch, version, release_needed, reasons, modules_total, modules_changed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = ds.db.Exec(query, formatTime(record.DecidedAt, ds.backend), record.Mode, record.Branch,
			record.Version, record.ReleaseNeeded, reasons, record.ModulesTotal, record.ModulesChanged)
		if err != nil {
			return 0, fmt.Errorf("failed to insert decision: %w", err)
		}
		decisionID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert decision: %w", err)
	}
	return decisionID, nil
}

// GetRecentDecisions returns up to limit decisions, newest first. A
// non-positive limit returns all decisions.
func (ds *DecisionStoreImpl) GetRecentDecisions(limit int) ([]schema.DecisionRecord, error) {
	// Skip for NoneBackend
	if ds.backend == schema.NoneBackend || ds.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(decisionsTable, ds.backend)
	query := fmt.Sprintf(`SELECT decision_id, decided_at, mode, branch, version, release_needed, reasons, modules_total, modules_changed
		FROM %s ORDER BY decision_id DESC`, quotedTableName)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := ds.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.DecisionRecord
	for rows.Next() {
		record, err := ds.scanDecision(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decisions: %w", err)
	}
	return results, nil
}

// scanDecision reads one decision row, handling the per-backend time and
// nullable version representations.
func (ds *DecisionStoreImpl) scanDecision(rows *sql.Rows) (schema.DecisionRecord, error) {
	var record schema.DecisionRecord
	var version sql.NullString
	var reasons string

	switch ds.backend {
	case schema.SQLiteBackend:
		var decidedAtStr string
		if err := rows.Scan(&record.DecisionID, &decidedAtStr, &record.Mode, &record.Branch, &version,
			&record.ReleaseNeeded, &reasons, &record.ModulesTotal, &record.ModulesChanged); err != nil {
			return record, fmt.Errorf("failed to scan decision: %w", err)
		}
		decidedAt, err := time.Parse(time.RFC3339Nano, decidedAtStr)
		if err != nil {
			return record, fmt.Errorf("failed to parse decided_at: %w", err)
		}
		record.DecidedAt = decidedAt
	default: // MySQL and PostgreSQL store as native datetime
		if err := rows.Scan(&record.DecisionID, &record.DecidedAt, &record.Mode, &record.Branch, &version,
			&record.ReleaseNeeded, &reasons, &record.ModulesTotal, &record.ModulesChanged); err != nil {
			return record, fmt.Errorf("failed to scan decision: %w", err)
		}
	}

	record.Version = version.String
	if reasons != "" {
		record.Reasons = strings.Split(reasons, reasonSeparator)
	}
	return record, nil
}

// GetStatus returns status information about the history store.
func (ds *DecisionStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(ds.backend),
		Connected: ds.db != nil,
	}

	if ds.backend == schema.NoneBackend || ds.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(decisionsTable, ds.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	row := ds.db.QueryRow(countQuery)
	if err := row.Scan(&status.TotalDecisions); err != nil {
		return status, fmt.Errorf("failed to get total decisions: %w", err)
	}

	neededQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE release_needed", quotedTableName)
	if ds.backend == schema.SQLiteBackend {
		neededQuery = fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE release_needed = 1", quotedTableName)
	}
	row = ds.db.QueryRow(neededQuery)
	if err := row.Scan(&status.ReleasesNeeded); err != nil {
		return status, fmt.Errorf("failed to get releases needed: %w", err)
	}

	if status.TotalDecisions == 0 {
		return status, nil
	}

	newest, err := ds.decisionTimeAt("MAX")
	if err != nil {
		return status, err
	}
	status.LastDecisionTime = newest

	oldest, err := ds.decisionTimeAt("MIN")
	if err != nil {
		return status, err
	}
	status.OldestDecisionTime = oldest

	return status, nil
}

// decisionTimeAt reads the MAX or MIN decided_at timestamp.
func (ds *DecisionStoreImpl) decisionTimeAt(aggregate string) (time.Time, error) {
	quotedTableName := quoteTableName(decisionsTable, ds.backend)
	query := fmt.Sprintf("SELECT %s(decided_at) FROM %s", aggregate, quotedTableName)
	row := ds.db.QueryRow(query)

	switch ds.backend {
	case schema.SQLiteBackend:
		var tsStr string
		if err := row.Scan(&tsStr); err != nil {
			return time.Time{}, fmt.Errorf("failed to get %s decision time: %w", aggregate, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, tsStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse decision time: %w", err)
		}
		return ts, nil
	default:
		var ts time.Time
		if err := row.Scan(&ts); err != nil {
			return time.Time{}, fmt.Errorf("failed to get %s decision time: %w", aggregate, err)
		}
		return ts, nil
	}
}

// Close closes the underlying DB connection.
func (ds *DecisionStoreImpl) Close() error {
	if ds.db != nil {
		return ds.db.Close()
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
