package azure

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptionsAPI struct {
	response armsubscriptions.ClientGetResponse
	err      error
	gotID    string
}

func (f *fakeSubscriptionsAPI) Get(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error) {
	f.gotID = subscriptionID
	return f.response, f.err
}

func TestApplyEmptySubscriptionIsNoOp(t *testing.T) {
	api := &fakeSubscriptionsAPI{err: errors.New("must not be called")}
	setter := &ContextSetter{api: api}

	current, err := setter.Apply(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, current)
	assert.Empty(t, api.gotID)
}

func TestApplyReturnsPlatformContext(t *testing.T) {
	state := armsubscriptions.SubscriptionStateEnabled
	api := &fakeSubscriptionsAPI{
		response: armsubscriptions.ClientGetResponse{
			Subscription: armsubscriptions.Subscription{
				SubscriptionID: to.Ptr("sub-1"),
				DisplayName:    to.Ptr("Production"),
				TenantID:       to.Ptr("ten-1"),
				State:          &state,
			},
		},
	}
	setter := &ContextSetter{api: api}

	current, err := setter.Apply(context.Background(), "sub-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "sub-1", api.gotID)
	assert.Equal(t, "sub-1", current.SubscriptionID)
	assert.Equal(t, "Production", current.SubscriptionName)
	assert.Equal(t, "ten-1", current.TenantID)
	assert.Equal(t, "Enabled", current.State)
}

func TestApplyPropagatesPlatformFailure(t *testing.T) {
	api := &fakeSubscriptionsAPI{err: errors.New("SubscriptionNotFound")}
	setter := &ContextSetter{api: api}

	_, err := setter.Apply(context.Background(), "sub-x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SubscriptionNotFound")
	assert.Contains(t, err.Error(), "sub-x")
}
