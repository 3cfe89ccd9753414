// Package export writes role assignment results to a local SQLite file so
// operators can query past runs with plain SQL.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/sqlite"

	"criticalsys.net/aztoolkit/internal/azure"
)

func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	// Pragma trades crash safety for write speed; the file is a report,
	// not a system of record.
	dsn := fmt.Sprintf("file:%s?_pragma=synchronous(OFF)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createTableSQL := `CREATE TABLE IF NOT EXISTS roleAssignments (
		subscriptionId TEXT,
		principalId TEXT,
		principalType TEXT,
		roleName TEXT,
		roleDefinitionId TEXT,
		scope TEXT,
		inherited INTEGER
	);`
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	createIndexSQL := `CREATE INDEX IF NOT EXISTS idx_principalId ON roleAssignments (principalId);`
	if _, err := db.ExecContext(ctx, createIndexSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create principalId index: %w", err)
	}

	return db, nil
}

// WriteRoleAssignments appends the assignment rows to the SQLite file at
// path, creating it and its schema when missing.
func WriteRoleAssignments(ctx context.Context, path, subscriptionID string, assignments []azure.RoleAssignment) error {
	db, err := openDatabase(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO roleAssignments
		(subscriptionId, principalId, principalType, roleName, roleDefinitionId, scope, inherited)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		inherited := 0
		if a.Inherited {
			inherited = 1
		}
		if _, err := stmt.ExecContext(ctx, subscriptionID, a.PrincipalID, a.PrincipalType, a.RoleName, a.RoleDefinitionID, a.Scope, inherited); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert role assignment %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit role assignments: %w", err)
	}

	slog.Info("wrote role assignments", "file", path, "rows", len(assignments))
	return nil
}
