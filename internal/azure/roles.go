package azure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"golang.org/x/time/rate"
)

// RoleAssignment is one assignment visible at a resource scope.
//
// Inherited is a scope comparison, not a verified inheritance walk: an
// assignment whose scope differs from the queried resource scope is taken
// to come from a parent scope (resource group, subscription, management
// group).
type RoleAssignment struct {
	ID               string
	PrincipalID      string
	PrincipalType    string
	RoleDefinitionID string
	RoleName         string
	Scope            string
	Inherited        bool
}

type roleAssignmentsAPI interface {
	NewListForScopePager(scope string, options *armauthorization.RoleAssignmentsClientListForScopeOptions) *runtime.Pager[armauthorization.RoleAssignmentsClientListForScopeResponse]
}

type roleDefinitionsAPI interface {
	GetByID(ctx context.Context, roleID string, options *armauthorization.RoleDefinitionsClientGetByIDOptions) (armauthorization.RoleDefinitionsClientGetByIDResponse, error)
}

// RoleAssignmentLister enumerates role assignments for a principal at a
// scope, resolving role definition IDs to display names as it goes.
type RoleAssignmentLister struct {
	assignments roleAssignmentsAPI
	definitions roleDefinitionsAPI

	// One role definition lookup per distinct role; ARM throttles
	// authorization reads aggressively, so lookups are paced.
	limiter *rate.Limiter
}

func NewRoleAssignmentLister(cred azcore.TokenCredential, subscriptionID string) (*RoleAssignmentLister, error) {
	assignments, err := armauthorization.NewRoleAssignmentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create role assignments client: %w", err)
	}
	definitions, err := armauthorization.NewRoleDefinitionsClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create role definitions client: %w", err)
	}
	return &RoleAssignmentLister{
		assignments: assignments,
		definitions: definitions,
		limiter:     rate.NewLimiter(rate.Limit(10), 1),
	}, nil
}

// ListForPrincipal returns all assignments for the principal visible at
// scope, direct and inherited alike, ordered as the API returns them.
func (l *RoleAssignmentLister) ListForPrincipal(ctx context.Context, scope, principalObjectID string) ([]RoleAssignment, error) {
	options := &armauthorization.RoleAssignmentsClientListForScopeOptions{
		Filter: to.Ptr(principalFilter(principalObjectID)),
	}

	roleNames := make(map[string]string)
	var results []RoleAssignment

	pager := l.assignments.NewListForScopePager(scope, options)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list role assignments for scope %s: %w", scope, err)
		}

		for _, assignment := range page.Value {
			if assignment.Properties == nil {
				continue
			}
			props := assignment.Properties

			ra := RoleAssignment{}
			if assignment.ID != nil {
				ra.ID = *assignment.ID
			}
			if props.PrincipalID != nil {
				ra.PrincipalID = *props.PrincipalID
			}
			if props.PrincipalType != nil {
				ra.PrincipalType = string(*props.PrincipalType)
			}
			if props.Scope != nil {
				ra.Scope = *props.Scope
			}
			if props.RoleDefinitionID != nil {
				ra.RoleDefinitionID = *props.RoleDefinitionID
				ra.RoleName = l.roleName(ctx, *props.RoleDefinitionID, roleNames)
			}
			ra.Inherited = isInherited(scope, ra.Scope)

			results = append(results, ra)
		}
	}

	return results, nil
}

// roleName resolves a role definition ID to its display name, memoizing
// per call. A failed lookup degrades to the raw definition ID.
func (l *RoleAssignmentLister) roleName(ctx context.Context, roleDefinitionID string, seen map[string]string) string {
	if name, ok := seen[roleDefinitionID]; ok {
		return name
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return roleDefinitionID
	}

	def, err := l.definitions.GetByID(ctx, roleDefinitionID, nil)
	if err != nil {
		slog.Debug("failed to resolve role definition", "id", roleDefinitionID, "error", err)
		seen[roleDefinitionID] = roleDefinitionID
		return roleDefinitionID
	}

	name := roleDefinitionID
	if def.Properties != nil && def.Properties.RoleName != nil {
		name = *def.Properties.RoleName
	}
	seen[roleDefinitionID] = name
	return name
}

// principalFilter builds the assignment filter for one principal.
func principalFilter(objectID string) string {
	return fmt.Sprintf("principalId eq '%s'", strings.ReplaceAll(objectID, "'", "''"))
}

// isInherited classifies an assignment by comparing its scope with the
// queried resource scope, case-insensitively since ARM IDs are not
// case-normalized.
func isInherited(resourceScope, assignmentScope string) bool {
	return !strings.EqualFold(resourceScope, assignmentScope)
}
