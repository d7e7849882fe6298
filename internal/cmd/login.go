package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := admin.Login(cmd.Context(), loginEmail, loginPassword); err != nil {
			return err
		}
		role, _ := admin.Session().Role()
		fmt.Printf("logged in as %s (%s)\n", loginEmail, role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := admin.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session's resolved role",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess(nil); err != nil {
			return err
		}
		role, _ := admin.Session().Role()
		if role == "" {
			// Authenticated but the role fetch degraded; still usable output.
			fmt.Println("logged in, role unresolved")
			return nil
		}
		fmt.Println(role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "admin account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "admin account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
