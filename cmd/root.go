package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"criticalsys.net/aztoolkit/internal/azure"
	"criticalsys.net/aztoolkit/internal/config"
)

var (
	flagConfigPath   string
	flagConfigName   string
	flagConfigDir    string
	flagPrefix       string
	flagSubscription string
	flagTenant       string
	flagDeviceCode   bool
	flagVerbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "aztoolkit",
	Short: "Administrative tasks for Azure, Entra ID and Microsoft 365",
	Long: `aztoolkit bundles narrow, single-purpose administrative tasks:
verifying prerequisites, selecting a subscription context, setting
function app host keys, and listing role assignments. Task parameters
come from flags, falling back to a JSON config file located by the
<Prefix>.<Name>.json convention.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "explicit path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagConfigName, "name", "", "config name; resolves <config-dir>/<prefix>.<name>.json")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "directory to look up named configs in (default: the binary's directory)")
	rootCmd.PersistentFlags().StringVar(&flagPrefix, "prefix", config.DefaultPrefix, "config file name prefix")
	rootCmd.PersistentFlags().StringVar(&flagSubscription, "subscription", "", "subscription ID (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTenant, "tenant", "", "tenant ID (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagDeviceCode, "device-code", false, "authenticate with the device code flow")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	cobra.OnInitialize(initLogger)
}

func initLogger() {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

// loadDocument locates and reads the config file selected by the global
// flags. A nil document simply means no config was requested.
func loadDocument() (*config.Document, error) {
	path, err := config.Locate(flagConfigPath, flagConfigName, flagConfigDir, flagPrefix)
	if err != nil {
		return nil, err
	}
	if path != "" {
		slog.Debug("using config file", "path", path)
	}
	return config.Read(path)
}

// newCredential builds the credential from the tenant flag and the auth
// section of the config, explicit flag winning as everywhere else.
func newCredential(doc *config.Document) (azcore.TokenCredential, error) {
	return azure.NewCredential(azure.CredentialOptions{
		TenantID:      config.Resolve(flagTenant, doc.TenantID()),
		UseDeviceCode: flagDeviceCode || doc.UseDeviceAuthentication(),
	})
}

// resolveSubscription applies the subscription precedence chain:
// flag, then context.subscriptionId, then the legacy alias.
func resolveSubscription(doc *config.Document) string {
	return config.Resolve(flagSubscription, doc.SubscriptionID(), doc.DefaultSubscriptionID())
}
