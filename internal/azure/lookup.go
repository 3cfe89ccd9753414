package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"
)

// Resource identifies an ARM resource located through Resource Graph.
type Resource struct {
	ID            string
	Name          string
	Type          string
	ResourceGroup string
}

type resourceGraphAPI interface {
	Resources(ctx context.Context, query armresourcegraph.QueryRequest, options *armresourcegraph.ClientResourcesOptions) (armresourcegraph.ClientResourcesResponse, error)
}

// ResourceLocator resolves a resource name (optionally narrowed by type and
// resource group) to a single ARM resource ID via an ARG query.
type ResourceLocator struct {
	api resourceGraphAPI
}

func NewResourceLocator(cred azcore.TokenCredential) (*ResourceLocator, error) {
	client, err := armresourcegraph.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource graph client: %w", err)
	}
	return &ResourceLocator{api: client}, nil
}

// Find runs the lookup query scoped to the given subscription. Exactly one
// match is required; zero or several are both fatal, since the result feeds
// a role-assignment scope.
func (l *ResourceLocator) Find(ctx context.Context, subscriptionID, name, resourceType, resourceGroup string) (*Resource, error) {
	query := buildLookupQuery(name, resourceType, resourceGroup)

	request := armresourcegraph.QueryRequest{
		Query: to.Ptr(query),
		Options: &armresourcegraph.QueryRequestOptions{
			ResultFormat: to.Ptr(armresourcegraph.ResultFormatObjectArray),
		},
	}
	if subscriptionID != "" {
		request.Subscriptions = []*string{to.Ptr(subscriptionID)}
	}

	response, err := l.api.Resources(ctx, request, nil)
	if err != nil {
		return nil, fmt.Errorf("resource graph query failed: %w", err)
	}

	matches := parseResourceRows(response.Data)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("resource not found: %s", name)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("resource name %s is ambiguous: %d matches, narrow with a resource type or resource group", name, len(matches))
	}
}

// buildLookupQuery assembles the KQL lookup. Values are embedded as
// single-quoted literals, so quotes and backslashes must be escaped.
func buildLookupQuery(name, resourceType, resourceGroup string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Resources | where name =~ '%s'", escapeKQL(name))
	if resourceType != "" {
		fmt.Fprintf(&sb, " | where type =~ '%s'", escapeKQL(resourceType))
	}
	if resourceGroup != "" {
		fmt.Fprintf(&sb, " | where resourceGroup =~ '%s'", escapeKQL(resourceGroup))
	}
	sb.WriteString(" | project id, name, type, resourceGroup")
	return sb.String()
}

func escapeKQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// SubscriptionFromResourceID extracts the subscription ID from an ARM
// resource ID of the form /subscriptions/<id>/...
func SubscriptionFromResourceID(resourceID string) (string, error) {
	parts := strings.Split(strings.TrimPrefix(resourceID, "/"), "/")
	if len(parts) < 2 || !strings.EqualFold(parts[0], "subscriptions") || parts[1] == "" {
		return "", fmt.Errorf("cannot extract subscription from resource ID: %s", resourceID)
	}
	return parts[1], nil
}

// parseResourceRows extracts resources from the loosely-typed ARG response
// payload. Rows missing an id are dropped.
func parseResourceRows(data any) []Resource {
	rows, ok := data.([]any)
	if !ok {
		return nil
	}

	var resources []Resource
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		id, _ := m["id"].(string)
		if id == "" {
			continue
		}
		name, _ := m["name"].(string)
		rtype, _ := m["type"].(string)
		rg, _ := m["resourceGroup"].(string)
		resources = append(resources, Resource{ID: id, Name: name, Type: rtype, ResourceGroup: rg})
	}
	return resources
}
