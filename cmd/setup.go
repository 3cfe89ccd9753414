package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"criticalsys.net/aztoolkit/internal/azure"
	"criticalsys.net/aztoolkit/internal/message"
)

var flagWriteConfig string

// starterConfig documents every key the toolkit reads. Written verbatim so
// the operator sees the full shape, not just whatever omitempty leaves.
const starterConfig = `{
  "context": {
    "subscriptionId": "",
    "tenantId": ""
  },
  "auth": {
    "useDeviceAuthentication": false
  },
  "lookup": {
    "resourceName": "",
    "resourceType": "",
    "resourceGroup": ""
  },
  "principal": {
    "upn": "",
    "objectId": ""
  },
  "functionApp": {
    "resourceGroupName": "",
    "name": ""
  },
  "hostKey": {
    "name": "",
    "value": ""
  }
}
`

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Verify prerequisites and optionally write a starter config",
	Args:  cobra.NoArgs,
	Long: `Checks that the Azure CLI is installed and that a credential can
be acquired. With --write-config NAME, also writes a starter config file
following the <prefix>.<name>.json convention and prints its path, so the
location is explicit rather than hidden in process state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if azPath, err := exec.LookPath("az"); err == nil {
			message.Success("azure cli found: %s", azPath)
		} else {
			message.Warning("azure cli not found on PATH; device-code or environment credentials still work")
		}

		doc, err := loadDocument()
		if err != nil {
			return err
		}

		cred, err := newCredential(doc)
		if err != nil {
			return err
		}
		tenantID, err := azure.TenantIDFromToken(ctx, cred)
		if err != nil {
			return fmt.Errorf("credential check failed: %w", err)
		}
		message.Success("credential check passed (tenant %s)", tenantID)

		if flagWriteConfig != "" {
			path, err := writeStarterConfig(flagWriteConfig)
			if err != nil {
				return err
			}
			message.Success("wrote starter config: %s", path)
		}
		return nil
	},
}

func writeStarterConfig(name string) (string, error) {
	dir := flagConfigDir
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			dir = "."
		} else {
			dir = filepath.Dir(exe)
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s.json", flagPrefix, name))
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(starterConfig), 0600); err != nil {
		return "", fmt.Errorf("error writing starter config %s: %w", path, err)
	}
	return path, nil
}

func init() {
	setupCmd.Flags().StringVar(&flagWriteConfig, "write-config", "", "write a starter config with this name")
	rootCmd.AddCommand(setupCmd)
}
