package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mind-engage/reasoned/internal/account"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Grant the admin role to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer st.db.Close()

		u, err := st.accounts.SetRole(cmd.Context(), args[0], account.RoleAdmin)
		if err != nil {
			return err
		}
		log.Info("account promoted", zap.String("user", u.Username), zap.String("role", u.Role))
		return nil
	},
}
