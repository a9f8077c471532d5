package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mind-engage/reasoned/internal/material"
)

var seedCmd = &cobra.Command{
	Use:   "seed-materials",
	Short: "Replace the materials table with the built-in chapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer st.db.Close()

		if err := st.materials.Replace(cmd.Context(), material.Builtin); err != nil {
			return err
		}
		log.Info("materials seeded", zap.Int("chapters", len(material.Builtin)))
		return nil
	},
}
