package cmd

import (
	"context"
	"errors"
	"fmt"

	"rewearadmin/client"
	"rewearadmin/internal/config"
	"rewearadmin/internal/guard"
	v1 "rewearadmin/pkg/api/v1"
	"rewearadmin/pkg/logger"

	"github.com/spf13/cobra"
)

var admin *client.Client

var rootCmd = &cobra.Command{
	Use:   "rewearctl",
	Short: "Admin CLI for the rewear clothing exchange platform",
	Long: `rewearctl operates the rewear admin platform from the terminal:
log in, inspect your role and review admin signup requests.

Configuration comes from config.yaml or REWEAR_* environment variables;
REWEAR_AUTH_OBFUSCATION_KEY must be set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.InitLogger(cfg.Server.Environment)

		admin, err = client.New(cfg)
		if err != nil {
			return err
		}
		// Each invocation is a fresh mount; settle the role session once.
		admin.Resolve(cmd.Context())
		return nil
	},
}

// ExecuteContext runs the root command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// requireAccess maps the route guard's decision onto CLI outcomes: instead
// of redirecting, blocked commands explain where to go.
func requireAccess(allowed []v1.Role) error {
	switch admin.Guard(allowed) {
	case guard.DecisionRender:
		return nil
	case guard.DecisionRedirectLogin:
		return errors.New("not logged in; run `rewearctl login` first")
	case guard.DecisionPlaceholder:
		return errors.New("session is still resolving; try again")
	case guard.DecisionRedirectHome:
		return fmt.Errorf("your role does not grant access to this screen")
	}
	return errors.New("unexpected guard decision")
}
