package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is the parsed config file. Every section is optional; accessors
// are nil-safe and return the zero value for anything absent, so callers
// never need to probe intermediate nodes.
type Document struct {
	Context     *ContextSection     `json:"context,omitempty"`
	Auth        *AuthSection        `json:"auth,omitempty"`
	Lookup      *LookupSection      `json:"lookup,omitempty"`
	Principal   *PrincipalSection   `json:"principal,omitempty"`
	FunctionApp *FunctionAppSection `json:"functionApp,omitempty"`
	HostKey     *HostKeySection     `json:"hostKey,omitempty"`
}

// ContextSection selects the subscription and tenant used for remote calls.
// defaultSubscriptionId is a legacy alias for subscriptionId.
type ContextSection struct {
	SubscriptionID        string `json:"subscriptionId,omitempty"`
	DefaultSubscriptionID string `json:"defaultSubscriptionId,omitempty"`
	TenantID              string `json:"tenantId,omitempty"`
}

type AuthSection struct {
	UseDeviceAuthentication bool `json:"useDeviceAuthentication,omitempty"`
}

type LookupSection struct {
	ResourceName  string `json:"resourceName,omitempty"`
	ResourceType  string `json:"resourceType,omitempty"`
	ResourceGroup string `json:"resourceGroup,omitempty"`
}

type PrincipalSection struct {
	UPN      string `json:"upn,omitempty"`
	ObjectID string `json:"objectId,omitempty"`
}

type FunctionAppSection struct {
	ResourceGroupName string `json:"resourceGroupName,omitempty"`
	Name              string `json:"name,omitempty"`
}

type HostKeySection struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// Read loads and parses the config file at path. An empty path means no
// config was located and yields a nil document with no error. A file that
// cannot be read or decoded is fatal; the error names the offending path.
func Read(path string) (*Document, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return &doc, nil
}

func (d *Document) SubscriptionID() string {
	if d == nil || d.Context == nil {
		return ""
	}
	return d.Context.SubscriptionID
}

// DefaultSubscriptionID is the legacy alias, consulted only when
// SubscriptionID is empty.
func (d *Document) DefaultSubscriptionID() string {
	if d == nil || d.Context == nil {
		return ""
	}
	return d.Context.DefaultSubscriptionID
}

func (d *Document) TenantID() string {
	if d == nil || d.Context == nil {
		return ""
	}
	return d.Context.TenantID
}

func (d *Document) UseDeviceAuthentication() bool {
	if d == nil || d.Auth == nil {
		return false
	}
	return d.Auth.UseDeviceAuthentication
}

func (d *Document) LookupResourceName() string {
	if d == nil || d.Lookup == nil {
		return ""
	}
	return d.Lookup.ResourceName
}

func (d *Document) LookupResourceType() string {
	if d == nil || d.Lookup == nil {
		return ""
	}
	return d.Lookup.ResourceType
}

func (d *Document) LookupResourceGroup() string {
	if d == nil || d.Lookup == nil {
		return ""
	}
	return d.Lookup.ResourceGroup
}

func (d *Document) PrincipalUPN() string {
	if d == nil || d.Principal == nil {
		return ""
	}
	return d.Principal.UPN
}

func (d *Document) PrincipalObjectID() string {
	if d == nil || d.Principal == nil {
		return ""
	}
	return d.Principal.ObjectID
}

func (d *Document) FunctionAppResourceGroup() string {
	if d == nil || d.FunctionApp == nil {
		return ""
	}
	return d.FunctionApp.ResourceGroupName
}

func (d *Document) FunctionAppName() string {
	if d == nil || d.FunctionApp == nil {
		return ""
	}
	return d.FunctionApp.Name
}

func (d *Document) HostKeyName() string {
	if d == nil || d.HostKey == nil {
		return ""
	}
	return d.HostKey.Name
}

func (d *Document) HostKeyValue() string {
	if d == nil || d.HostKey == nil {
		return ""
	}
	return d.HostKey.Value
}
