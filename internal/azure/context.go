package azure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// Context is the active subscription selection used for subsequent calls.
type Context struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	State            string
}

type subscriptionsAPI interface {
	Get(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error)
}

// ContextSetter applies a resolved subscription ID against the platform.
type ContextSetter struct {
	api subscriptionsAPI
}

func NewContextSetter(cred azcore.TokenCredential) (*ContextSetter, error) {
	client, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}
	return &ContextSetter{api: client}, nil
}

// Apply selects the given subscription and returns the platform's view of
// the resulting context. An empty subscription ID is an intentional no-op:
// the caller keeps whatever ambient context exists, and no error is raised.
func (s *ContextSetter) Apply(ctx context.Context, subscriptionID string) (*Context, error) {
	if subscriptionID == "" {
		slog.Info("no subscription ID provided, skipping context selection")
		return nil, nil
	}

	sub, err := s.api.Get(ctx, subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to set subscription context %s: %w", subscriptionID, err)
	}

	current := &Context{SubscriptionID: subscriptionID}
	if sub.SubscriptionID != nil {
		current.SubscriptionID = *sub.SubscriptionID
	}
	if sub.DisplayName != nil {
		current.SubscriptionName = *sub.DisplayName
	}
	if sub.TenantID != nil {
		current.TenantID = *sub.TenantID
	}
	if sub.State != nil {
		current.State = string(*sub.State)
	}
	return current, nil
}
