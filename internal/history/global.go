package history

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/relgate/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &DecisionHistoryManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitHistory initializes the global history manager with a decision store.
func InitHistory(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		store, err := NewDecisionStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize decision history: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.decisions = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseHistory should be called on application shutdown.
func CloseHistory() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.decisions != nil {
			_ = Manager.decisions.Close()
		}
	})
}

// ClearHistory clears the decision history for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropDecisionsTable("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropDecisionsTable("pgx", connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// dropDecisionsTable connects to the SQL database and drops the decisions
// table if it exists.
func dropDecisionsTable(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", decisionsTable)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", decisionsTable, err)
	}
	return nil
}
