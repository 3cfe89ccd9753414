package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	abstractions "github.com/microsoft/kiota-abstractions-go"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/users"
)

// Principal is a directory principal resolved to its object ID.
type Principal struct {
	ObjectID    string
	UPN         string
	DisplayName string
}

// PrincipalResolver turns a user principal name into a Principal.
type PrincipalResolver interface {
	ResolveUPN(ctx context.Context, upn string) (*Principal, error)
}

// GraphClient wraps the Microsoft Graph service client for the directory
// queries the toolkit needs.
type GraphClient struct {
	client *msgraphsdk.GraphServiceClient
}

func NewGraphClient(cred azcore.TokenCredential) (*GraphClient, error) {
	client, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating Graph client: %w", err)
	}
	return &GraphClient{client: client}, nil
}

// ResolveUPN looks up a user by exact userPrincipalName. Filtered user
// queries are advanced queries in Graph terms, so the request carries
// $count and the eventual-consistency header.
func (g *GraphClient) ResolveUPN(ctx context.Context, upn string) (*Principal, error) {
	headers := abstractions.NewRequestHeaders()
	headers.Add("ConsistencyLevel", "eventual")

	configuration := &users.UsersRequestBuilderGetRequestConfiguration{
		Headers: headers,
		QueryParameters: &users.UsersRequestBuilderGetQueryParameters{
			Filter: to.Ptr(fmt.Sprintf("userPrincipalName eq '%s'", escapeODataLiteral(upn))),
			Select: []string{"id", "displayName", "userPrincipalName"},
			Count:  to.Ptr(true),
		},
	}

	result, err := g.client.Users().Get(ctx, configuration)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", upn, err)
	}

	var match *Principal
	iterator, err := msgraphcore.NewPageIterator[models.Userable](
		result,
		g.client.GetAdapter(),
		models.CreateUserCollectionResponseFromDiscriminatorValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate user results: %w", err)
	}

	err = iterator.Iterate(ctx, func(user models.Userable) bool {
		p := &Principal{}
		if id := user.GetId(); id != nil {
			p.ObjectID = *id
		}
		if u := user.GetUserPrincipalName(); u != nil {
			p.UPN = *u
		}
		if name := user.GetDisplayName(); name != nil {
			p.DisplayName = *name
		}
		match = p
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate user results: %w", err)
	}

	if match == nil || match.ObjectID == "" {
		return nil, fmt.Errorf("principal not found: %s", upn)
	}
	return match, nil
}

// TenantDisplayName returns the organization display name of the signed-in
// tenant.
func (g *GraphClient) TenantDisplayName(ctx context.Context) (string, error) {
	org, err := g.client.Organization().Get(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get organization details: %w", err)
	}

	if value := org.GetValue(); len(value) > 0 {
		if name := value[0].GetDisplayName(); name != nil {
			return *name, nil
		}
	}
	return "", nil
}

// ResolvePrincipal prefers an explicit object ID and falls back to a UPN
// lookup through the resolver. At least one of the two must be present.
func ResolvePrincipal(ctx context.Context, resolver PrincipalResolver, objectID, upn string) (*Principal, error) {
	if objectID != "" {
		return &Principal{ObjectID: objectID, UPN: upn}, nil
	}
	if upn == "" {
		return nil, fmt.Errorf("missing required value: principal.objectId or principal.upn")
	}
	return resolver.ResolveUPN(ctx, upn)
}

// escapeODataLiteral doubles single quotes for embedding in an OData
// filter string literal.
func escapeODataLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
