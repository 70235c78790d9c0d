package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/daemon"
	"github.com/growfastwithus/growfast/internal/db/models"
)

// ErrPasswordRequired is returned by user add without --password.
var ErrPasswordRequired = errors.New("--password is required")

func init() { //nolint: gochecknoinits
	userAddCmd.Flags().StringVar(&newUser.email, "email", "", "Email address, used to link identity-provider accounts")
	userAddCmd.Flags().StringVar(&newUser.password, "password", "", "Password")
	userAddCmd.Flags().StringVar(&newUser.role, "role", models.RoleEditor, "Role: admin or editor")
	userAddCmd.Flags().StringSliceVar(&newUser.permissions, "permission", nil,
		"Permission granted to an editor, repeatable: "+strings.Join(auth.AllPermissions(), ", "))
	userAddCmd.Flags().BoolVar(&newUser.totp, "totp", false, "Enroll a TOTP second factor and print its secret")

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	newUser struct {
		email       string
		password    string
		role        string
		permissions []string
		totp        bool
	}

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage admin users",
	}

	userAddCmd = &cobra.Command{
		Use:     "add <username>",
		Short:   "Create an admin user",
		Args:    cobra.ExactArgs(1),
		PreRunE: readConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			if newUser.password == "" {
				return ErrPasswordRequired
			}

			db, _, err := daemon.Open(cfg.DB)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if err = daemon.Migrate(db); err != nil {
				return err //nolint:wrapcheck
			}

			local := auth.NewService(db, cfg.Admin).Local()

			user, err := local.CreateUser(args[0], newUser.email, newUser.password, newUser.role, newUser.permissions)
			if err != nil {
				return err //nolint:wrapcheck
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "created %s user %q (id %d)\n", user.Role, user.Username, user.ID)

			if !newUser.totp {
				return nil
			}

			key, err := auth.GenerateTOTP(cfg.Title, user.Username)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if err = local.SetTOTPSecret(user.ID, key.Secret()); err != nil {
				return err //nolint:wrapcheck
			}

			_, _ = fmt.Fprintf(out, "totp secret: %s\notpauth url: %s\n", key.Secret(), key.URL())

			return nil
		},
	}
)
