package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrecedence(t *testing.T) {
	doc := &Document{Context: &ContextSection{
		SubscriptionID:        "A",
		DefaultSubscriptionID: "B",
	}}

	tests := []struct {
		name     string
		explicit string
		doc      *Document
		want     string
	}{
		{"explicit wins over config", "explicit", doc, "explicit"},
		{"primary beats alias", "", doc, "A"},
		{
			"alias used when primary absent", "",
			&Document{Context: &ContextSection{DefaultSubscriptionID: "B"}}, "B",
		},
		{"absent everywhere", "", &Document{}, ""},
		{"nil document", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.explicit, tt.doc.SubscriptionID(), tt.doc.DefaultSubscriptionID())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFromExplicitPathScenario(t *testing.T) {
	// Explicit path "/tmp/x.json" with context.subscriptionId S1 and no
	// CLI override resolves to S1.
	path := writeConfig(t, `{"context":{"subscriptionId":"S1"}}`)

	located, err := Locate(path, "", "", "")
	require.NoError(t, err)
	doc, err := Read(located)
	require.NoError(t, err)

	assert.Equal(t, "S1", Resolve("", doc.SubscriptionID(), doc.DefaultSubscriptionID()))
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require("hostKey.name", "ops"))

	err := Require("functionApp.name", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "functionApp.name")
	assert.Contains(t, err.Error(), "missing required value")
}
