package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"criticalsys.net/aztoolkit/internal/azure"
)

func TestWriteRoleAssignmentsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignments.db")
	assignments := []azure.RoleAssignment{
		{
			ID:               "/a1",
			PrincipalID:      "obj-1",
			PrincipalType:    "User",
			RoleName:         "Reader",
			RoleDefinitionID: "/roles/reader",
			Scope:            "/subscriptions/s1/resourceGroups/rg1/providers/p/t/vm1",
			Inherited:        false,
		},
		{
			ID:               "/a2",
			PrincipalID:      "obj-1",
			PrincipalType:    "User",
			RoleName:         "Contributor",
			RoleDefinitionID: "/roles/contributor",
			Scope:            "/subscriptions/s1",
			Inherited:        true,
		},
	}

	ctx := context.Background()
	require.NoError(t, WriteRoleAssignments(ctx, path, "s1", assignments))

	db, err := openDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT subscriptionId, principalId, roleName, inherited FROM roleAssignments ORDER BY roleName`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		sub, principal, role string
		inherited            int
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.sub, &r.principal, &r.role, &r.inherited))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, 2)
	assert.Equal(t, row{"s1", "obj-1", "Contributor", 1}, got[0])
	assert.Equal(t, row{"s1", "obj-1", "Reader", 0}, got[1])
}

func TestWriteRoleAssignmentsAppendsOnSecondRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignments.db")
	ctx := context.Background()
	one := []azure.RoleAssignment{{ID: "/a1", PrincipalID: "obj-1", RoleName: "Reader"}}

	require.NoError(t, WriteRoleAssignments(ctx, path, "s1", one))
	require.NoError(t, WriteRoleAssignments(ctx, path, "s1", one))

	db, err := openDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roleAssignments`).Scan(&count))
	assert.Equal(t, 2, count)
}
