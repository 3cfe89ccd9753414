package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice"
)

const hostKeyType = "functionKeys"

type webAppsAPI interface {
	ListHostKeys(ctx context.Context, resourceGroupName string, name string, options *armappservice.WebAppsClientListHostKeysOptions) (armappservice.WebAppsClientListHostKeysResponse, error)
	CreateOrUpdateHostSecret(ctx context.Context, resourceGroupName string, name string, keyType string, keyName string, key armappservice.KeyInfo, options *armappservice.WebAppsClientCreateOrUpdateHostSecretOptions) (armappservice.WebAppsClientCreateOrUpdateHostSecretResponse, error)
}

// HostKeyWriter creates or updates named function host keys.
type HostKeyWriter struct {
	api webAppsAPI
}

func NewHostKeyWriter(cred azcore.TokenCredential, subscriptionID string) (*HostKeyWriter, error) {
	client, err := armappservice.NewWebAppsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create web apps client: %w", err)
	}
	return &HostKeyWriter{api: client}, nil
}

// HostKeyResult reports whether Set replaced an existing key of the same
// name or created a new one.
type HostKeyResult struct {
	Name    string
	Updated bool
}

// Set writes the host key on the function app. The pre-read of existing
// keys is informational only; the write itself is a plain upsert.
func (w *HostKeyWriter) Set(ctx context.Context, resourceGroup, appName, keyName, keyValue string) (*HostKeyResult, error) {
	existed := false
	keys, err := w.api.ListHostKeys(ctx, resourceGroup, appName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list host keys for %s: %w", appName, err)
	}
	if keys.FunctionKeys != nil {
		_, existed = keys.FunctionKeys[keyName]
	}

	key := armappservice.KeyInfo{
		Name:  to.Ptr(keyName),
		Value: to.Ptr(keyValue),
	}
	if _, err := w.api.CreateOrUpdateHostSecret(ctx, resourceGroup, appName, hostKeyType, keyName, key, nil); err != nil {
		return nil, fmt.Errorf("failed to set host key %s on %s: %w", keyName, appName, err)
	}

	return &HostKeyResult{Name: keyName, Updated: existed}, nil
}
