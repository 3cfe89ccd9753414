package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "AzToolkit.test.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadEmptyPathYieldsNilDocument(t *testing.T) {
	doc, err := Read("")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestReadFullDocument(t *testing.T) {
	path := writeConfig(t, `{
		"context": {"subscriptionId": "sub-1", "tenantId": "ten-1"},
		"auth": {"useDeviceAuthentication": true},
		"lookup": {"resourceName": "vm1", "resourceType": "Microsoft.Compute/virtualMachines", "resourceGroup": "rg1"},
		"principal": {"upn": "alice@contoso.com", "objectId": "obj-1"},
		"functionApp": {"resourceGroupName": "rg2", "name": "func1"},
		"hostKey": {"name": "ops", "value": "secret"}
	}`)

	doc, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "sub-1", doc.SubscriptionID())
	assert.Equal(t, "ten-1", doc.TenantID())
	assert.True(t, doc.UseDeviceAuthentication())
	assert.Equal(t, "vm1", doc.LookupResourceName())
	assert.Equal(t, "Microsoft.Compute/virtualMachines", doc.LookupResourceType())
	assert.Equal(t, "rg1", doc.LookupResourceGroup())
	assert.Equal(t, "alice@contoso.com", doc.PrincipalUPN())
	assert.Equal(t, "obj-1", doc.PrincipalObjectID())
	assert.Equal(t, "rg2", doc.FunctionAppResourceGroup())
	assert.Equal(t, "func1", doc.FunctionAppName())
	assert.Equal(t, "ops", doc.HostKeyName())
	assert.Equal(t, "secret", doc.HostKeyValue())
}

func TestReadIsIdempotent(t *testing.T) {
	path := writeConfig(t, `{"context": {"subscriptionId": "sub-1"}}`)

	first, err := Read(path)
	require.NoError(t, err)
	second, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReadParseErrorReportsPath(t *testing.T) {
	path := writeConfig(t, `{"context": `)

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestReadMissingFileReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AzToolkit.absent.json")
	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestReadToleratesUnknownDeeplyNestedSections(t *testing.T) {
	// Real-world configs carry unrelated, deeply nested material; decoding
	// must not fault on it.
	var sb strings.Builder
	sb.WriteString(`{"context": {"subscriptionId": "sub-1"}, "extra": `)
	for i := 0; i < 60; i++ {
		sb.WriteString(`{"n": `)
	}
	sb.WriteString(`1`)
	for i := 0; i < 60; i++ {
		sb.WriteString(`}`)
	}
	sb.WriteString(`}`)

	doc, err := Read(writeConfig(t, sb.String()))
	require.NoError(t, err)
	assert.Equal(t, "sub-1", doc.SubscriptionID())
}

func TestNilSafeAccessorsOnMissingSections(t *testing.T) {
	var nilDoc *Document
	empty := &Document{}

	for _, doc := range []*Document{nilDoc, empty} {
		assert.Empty(t, doc.SubscriptionID())
		assert.Empty(t, doc.DefaultSubscriptionID())
		assert.Empty(t, doc.TenantID())
		assert.False(t, doc.UseDeviceAuthentication())
		assert.Empty(t, doc.LookupResourceName())
		assert.Empty(t, doc.PrincipalUPN())
		assert.Empty(t, doc.FunctionAppName())
		assert.Empty(t, doc.HostKeyValue())
	}
}
