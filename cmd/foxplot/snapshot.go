package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/foxplot/foxplot/format"
	"github.com/foxplot/foxplot/snapshot"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		output      string
		compression string
	)

	cmd := &cobra.Command{
		Use:   "snapshot [file]",
		Short: "Freeze a record file into a compact .fxs archive",
		Long: `Read every record, freeze the series and store them in a snapshot
archive. Snapshots load much faster than the records they come from and can be
passed to foxplot in place of them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := compression
			if name == "" {
				name = a.config.Compression
			}
			codec, err := format.ParseCompression(name)
			if err != nil {
				return err
			}

			fox, err := a.load(cmd, inputPath(args))
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := fox.WriteSnapshot(f, snapshot.WithCompression(codec)); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			a.logger.Info("snapshot written", slog.String("path", output), slog.String("compression", codec.String()))
			fmt.Fprintf(cmd.OutOrStdout(), "%d series of %d samples written to %s\n", len(fox.Labels()), fox.Len(), output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "snapshot file to write")
	cmd.Flags().StringVar(&compression, "compression", "", "payload compression: none, zstd, s2 or lz4 (default zstd)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
