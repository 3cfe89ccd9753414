package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"criticalsys.net/aztoolkit/internal/azure"
	"criticalsys.net/aztoolkit/internal/config"
	"criticalsys.net/aztoolkit/internal/export"
	"criticalsys.net/aztoolkit/internal/message"
)

var (
	flagLookupResourceName  string
	flagLookupResourceType  string
	flagLookupResourceGroup string
	flagPrincipalUPN        string
	flagPrincipalObjectID   string
	flagOutputDB            string
)

var roleAssignmentsCmd = &cobra.Command{
	Use:   "role-assignments",
	Short: "List a principal's role assignments at a resource",
	Args:  cobra.NoArgs,
	Long: `Locates the resource through Azure Resource Graph, resolves the
principal (object ID directly, or UPN via Microsoft Graph), and lists
every role assignment visible at the resource scope. An assignment whose
scope differs from the resource's own scope is reported as inherited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		doc, err := loadDocument()
		if err != nil {
			return err
		}

		resourceName := config.Resolve(flagLookupResourceName, doc.LookupResourceName())
		resourceType := config.Resolve(flagLookupResourceType, doc.LookupResourceType())
		resourceGroup := config.Resolve(flagLookupResourceGroup, doc.LookupResourceGroup())
		upn := config.Resolve(flagPrincipalUPN, doc.PrincipalUPN())
		objectID := config.Resolve(flagPrincipalObjectID, doc.PrincipalObjectID())

		if err := config.Require("lookup.resourceName", resourceName); err != nil {
			return err
		}

		cred, err := newCredential(doc)
		if err != nil {
			return err
		}

		locator, err := azure.NewResourceLocator(cred)
		if err != nil {
			return err
		}

		subscriptionID := resolveSubscription(doc)
		resource, err := locator.Find(ctx, subscriptionID, resourceName, resourceType, resourceGroup)
		if err != nil {
			return err
		}
		message.Info("resource: %s (%s)", resource.Name, resource.Type)

		// Without a configured subscription, take it from the resource
		// the lookup just found.
		if subscriptionID == "" {
			subscriptionID, err = azure.SubscriptionFromResourceID(resource.ID)
			if err != nil {
				return err
			}
		}

		var resolver azure.PrincipalResolver
		if objectID == "" {
			graph, err := azure.NewGraphClient(cred)
			if err != nil {
				return err
			}
			resolver = graph
		}
		principal, err := azure.ResolvePrincipal(ctx, resolver, objectID, upn)
		if err != nil {
			return err
		}
		if principal.DisplayName != "" {
			message.Info("principal: %s (%s)", principal.DisplayName, principal.ObjectID)
		} else {
			message.Info("principal: %s", principal.ObjectID)
		}

		lister, err := azure.NewRoleAssignmentLister(cred, subscriptionID)
		if err != nil {
			return err
		}

		assignments, err := lister.ListForPrincipal(ctx, resource.ID, principal.ObjectID)
		if err != nil {
			return err
		}

		if len(assignments) == 0 {
			message.Warning("no role assignments found for %s at %s", principal.ObjectID, resource.Name)
			return nil
		}

		printAssignments(assignments)

		if flagOutputDB != "" {
			if err := export.WriteRoleAssignments(ctx, flagOutputDB, subscriptionID, assignments); err != nil {
				return err
			}
			message.Success("exported %d assignments to %s", len(assignments), flagOutputDB)
		}
		return nil
	},
}

func printAssignments(assignments []azure.RoleAssignment) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROLE\tTYPE\tASSIGNMENT\tSCOPE")

	direct, inherited := 0, 0
	for _, a := range assignments {
		kind := "Direct"
		if a.Inherited {
			kind = "Inherited"
			inherited++
		} else {
			direct++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.RoleName, a.PrincipalType, kind, a.Scope)
	}
	w.Flush()

	message.Info("%d assignments (%d direct, %d inherited)", len(assignments), direct, inherited)
}

func init() {
	roleAssignmentsCmd.Flags().StringVar(&flagLookupResourceName, "resource-name", "", "resource name to look up")
	roleAssignmentsCmd.Flags().StringVar(&flagLookupResourceType, "resource-type", "", "ARM resource type to narrow the lookup")
	roleAssignmentsCmd.Flags().StringVar(&flagLookupResourceGroup, "resource-group", "", "resource group to narrow the lookup")
	roleAssignmentsCmd.Flags().StringVar(&flagPrincipalUPN, "upn", "", "user principal name")
	roleAssignmentsCmd.Flags().StringVar(&flagPrincipalObjectID, "object-id", "", "principal object ID (skips the Graph lookup)")
	roleAssignmentsCmd.Flags().StringVar(&flagOutputDB, "output-db", "", "also export results to this SQLite file")
	rootCmd.AddCommand(roleAssignmentsCmd)
}
