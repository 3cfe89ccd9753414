package azure

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/golang-jwt/jwt/v5"
)

const armScope = "https://management.azure.com/.default"

// CredentialOptions selects how the toolkit authenticates. The device-code
// flow is opted into via auth.useDeviceAuthentication in the config file;
// everything else goes through the default credential chain (environment,
// managed identity, Azure CLI session).
type CredentialOptions struct {
	TenantID      string
	UseDeviceCode bool
}

// NewCredential builds the token credential every remote call receives
// explicitly. No client holds implicit session state of its own.
func NewCredential(opts CredentialOptions) (azcore.TokenCredential, error) {
	if opts.UseDeviceCode {
		cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
			TenantID: opts.TenantID,
			UserPrompt: func(ctx context.Context, dc azidentity.DeviceCodeMessage) error {
				fmt.Println(dc.Message)
				return nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("error creating device code credential: %w", err)
		}
		return cred, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		TenantID: opts.TenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating credential: %w", err)
	}
	return cred, nil
}

// TenantIDFromToken acquires an ARM token and extracts the "tid" claim.
// The token comes straight from Entra ID, so the signature is not verified
// here; this is only for display, never for authenticating requests.
func TenantIDFromToken(ctx context.Context, cred azcore.TokenCredential) (string, error) {
	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{armScope}})
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	parser := new(jwt.Parser)
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token.Token, claims); err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	tid, ok := claims["tid"].(string)
	if !ok {
		return "", errors.New("could not find 'tid' claim in token")
	}
	return tid, nil
}
