package cmd

import (
	"github.com/spf13/cobra"

	"criticalsys.net/aztoolkit/internal/azure"
	"criticalsys.net/aztoolkit/internal/message"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Authenticate and select the subscription context",
	Args:  cobra.NoArgs,
	Long: `Authenticates against Entra ID and applies the subscription
context resolved from --subscription, context.subscriptionId, or the
legacy context.defaultSubscriptionId, in that order. Without any
subscription ID the context selection is skipped, not failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

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
			return err
		}
		message.Success("authenticated to tenant %s", tenantID)

		// Tenant display name needs Graph directory read permission,
		// which a working ARM credential does not imply.
		if graph, err := azure.NewGraphClient(cred); err == nil {
			if name, err := graph.TenantDisplayName(ctx); err == nil && name != "" {
				message.Info("tenant: %s", name)
			} else if err != nil {
				message.Warning("could not read tenant display name: %v", err)
			}
		}

		setter, err := azure.NewContextSetter(cred)
		if err != nil {
			return err
		}

		current, err := setter.Apply(ctx, resolveSubscription(doc))
		if err != nil {
			return err
		}
		if current == nil {
			message.Info("no subscription ID resolved; context unchanged")
			return nil
		}

		message.Success("context set to subscription %s (%s)", current.SubscriptionName, current.SubscriptionID)
		if current.State != "" {
			message.Info("subscription state: %s", current.State)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
