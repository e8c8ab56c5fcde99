package cmd

import (
	"encoding/json"
	"fraudGuard/business/rgcn"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <weights.json>",
	Short: "Verify a weight file and print its dimensions and checksum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := rgcn.LoadFile(args[0])
		if err != nil {
			return err
		}
		sum, err := model.Checksum()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"path":           args[0],
			"format_version": rgcn.FormatVersion,
			"dims":           model.Dims(),
			"checksum":       sum,
		})
	},
}
