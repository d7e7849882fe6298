package cmd

import (
	"fmt"

	"rewearadmin/client"
	v1 "rewearadmin/pkg/api/v1"

	"github.com/spf13/cobra"
)

var signupForm client.SignupForm

var signupRequestCmd = &cobra.Command{
	Use:   "signup-request",
	Short: "Submit an admin signup request for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := admin.CreateSignupRequest(cmd.Context(), signupForm)
		if err != nil {
			return err
		}
		fmt.Printf("submitted request %s (%s, %s)\n", rec.ID, rec.Email, rec.RequestedRole)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Review pending admin signup requests",
}

// Reviewing signups mirrors the approval screen, which only super admins
// may open.
var reviewRoles = []v1.Role{v1.RoleSuperAdmin}

var signupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List signup requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess(reviewRoles); err != nil {
			return err
		}
		recs, err := admin.ListSignupRequests(cmd.Context())
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("no signup requests")
			return nil
		}
		for _, rec := range recs {
			fmt.Printf("%s  %-10s %-24s %-12s %s\n", rec.ID, rec.Status, rec.Email, rec.RequestedRole, rec.Reason)
		}
		return nil
	},
}

var signupApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a signup request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess(reviewRoles); err != nil {
			return err
		}
		rec, err := admin.ApproveSignupRequest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("approved %s as %s\n", rec.Email, rec.RequestedRole)
		return nil
	},
}

var signupRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a signup request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess(reviewRoles); err != nil {
			return err
		}
		rec, err := admin.RejectSignupRequest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("rejected %s\n", rec.Email)
		return nil
	},
}

func init() {
	signupRequestCmd.Flags().StringVar(&signupForm.Email, "email", "", "account email")
	signupRequestCmd.Flags().StringVar(&signupForm.Password, "password", "", "account password")
	signupRequestCmd.Flags().StringVar(&signupForm.PasswordConfirm, "password-confirm", "", "password confirmation")
	signupRequestCmd.Flags().StringVar(&signupForm.Name, "name", "", "display name")
	signupRequestCmd.Flags().StringVar(&signupForm.RequestedRole, "role", string(v1.RoleManager), "requested role (SUPER_ADMIN, ADMIN, MANAGER)")
	signupRequestCmd.Flags().StringVar(&signupForm.Reason, "reason", "", "why access is needed")
	signupRequestCmd.MarkFlagRequired("email")
	signupRequestCmd.MarkFlagRequired("password")
	signupRequestCmd.MarkFlagRequired("password-confirm")
	signupRequestCmd.MarkFlagRequired("name")

	signupCmd.AddCommand(signupListCmd, signupApproveCmd, signupRejectCmd)
	rootCmd.AddCommand(signupRequestCmd, signupCmd)
}
