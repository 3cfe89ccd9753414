package cmd

import (
	"github.com/spf13/cobra"

	"criticalsys.net/aztoolkit/internal/azure"
	"criticalsys.net/aztoolkit/internal/config"
	"criticalsys.net/aztoolkit/internal/message"
)

var (
	flagHostKeyResourceGroup string
	flagHostKeyFunctionApp   string
	flagHostKeyName          string
	flagHostKeyValue         string
)

var setHostKeyCmd = &cobra.Command{
	Use:   "set-hostkey",
	Short: "Create or update a function app host key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		doc, err := loadDocument()
		if err != nil {
			return err
		}

		resourceGroup := config.Resolve(flagHostKeyResourceGroup, doc.FunctionAppResourceGroup())
		appName := config.Resolve(flagHostKeyFunctionApp, doc.FunctionAppName())
		keyName := config.Resolve(flagHostKeyName, doc.HostKeyName())
		keyValue := config.Resolve(flagHostKeyValue, doc.HostKeyValue())
		subscriptionID := resolveSubscription(doc)

		for _, required := range []struct{ field, value string }{
			{"functionApp.resourceGroupName", resourceGroup},
			{"functionApp.name", appName},
			{"hostKey.name", keyName},
			{"hostKey.value", keyValue},
			{"context.subscriptionId", subscriptionID},
		} {
			if err := config.Require(required.field, required.value); err != nil {
				return err
			}
		}

		cred, err := newCredential(doc)
		if err != nil {
			return err
		}

		writer, err := azure.NewHostKeyWriter(cred, subscriptionID)
		if err != nil {
			return err
		}

		result, err := writer.Set(ctx, resourceGroup, appName, keyName, keyValue)
		if err != nil {
			return err
		}

		if result.Updated {
			message.Success("updated host key %s on %s", result.Name, appName)
		} else {
			message.Success("created host key %s on %s", result.Name, appName)
		}
		return nil
	},
}

func init() {
	setHostKeyCmd.Flags().StringVar(&flagHostKeyResourceGroup, "resource-group", "", "resource group of the function app")
	setHostKeyCmd.Flags().StringVar(&flagHostKeyFunctionApp, "function-app", "", "function app name")
	setHostKeyCmd.Flags().StringVar(&flagHostKeyName, "key-name", "", "host key name")
	setHostKeyCmd.Flags().StringVar(&flagHostKeyValue, "key-value", "", "host key value")
	rootCmd.AddCommand(setHostKeyCmd)
}
