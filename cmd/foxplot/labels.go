package main

import (
	"github.com/spf13/cobra"
)

func newLabelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "labels [file]",
		Short: "List the series labels found in a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fox, err := a.load(cmd, inputPath(args))
			if err != nil {
				return err
			}

			return printLabels(cmd.OutOrStdout(), fox)
		},
	}
}
