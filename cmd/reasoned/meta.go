package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mind-engage/reasoned/internal/question"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Print the exam, track and subject taxonomy as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(question.Meta())
	},
}
