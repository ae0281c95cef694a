package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/foxplot/foxplot"
	"github.com/foxplot/foxplot/decode"
	"github.com/foxplot/foxplot/internal/logging"
	"github.com/foxplot/foxplot/plot"
	"github.com/foxplot/foxplot/series"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	timeLabel  string
}

// app carries the resolved configuration of one invocation.
type app struct {
	flags  globalFlags
	config fileConfig
	logger *slog.Logger
}

type plotFlags struct {
	left      []string
	right     []string
	title     string
	leftUnit  string
	rightUnit string
	noOpen    bool
	output    string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var pf plotFlags

	cmd := &cobra.Command{
		Use:   "foxplot [file]",
		Short: "Plot time series from JSON or MessagePack records",
		Long: `Plot time series from a stream of nested records.

Every record is a JSON object or MessagePack map, one per time step. Each
scalar found in the records becomes a series addressed by its slash-delimited
path, for instance /observation/imu/orientation/0.

Supported inputs: .json, .jsonl, .ndjson, .mpack, .msgpack, optionally
compressed (.zst, .s2, .lz4), .fxs snapshots, and "stdin" or "-". Without a
file, JSON records are read from standard input.

Without -l or -r, the available labels are listed instead.

Examples:
  foxplot run.jsonl -t /time -l /observation/velocity
  foxplot run.mpack -l /action/a,/action/b -r /observation/current --right-unit A
  cat run.json | foxplot -l /x --no-open --output x.html`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlot(cmd, inputPath(args), pf)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/foxplot/config.yaml)")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVarP(&a.flags.timeLabel, "time", "t", "", "label of the time index")

	cmd.Flags().StringSliceVarP(&pf.left, "left", "l", nil, "series to plot on the left axis")
	cmd.Flags().StringSliceVarP(&pf.right, "right", "r", nil, "series to plot on the right axis")
	cmd.Flags().StringVar(&pf.title, "title", "", `plot title (default "Plot from <date> at <time>")`)
	cmd.Flags().StringVar(&pf.leftUnit, "left-unit", "", "unit of the left axis")
	cmd.Flags().StringVar(&pf.rightUnit, "right-unit", "", "unit of the right axis")
	cmd.Flags().BoolVar(&pf.noOpen, "no-open", false, "do not open the plot in a web browser")
	cmd.Flags().StringVarP(&pf.output, "output", "o", "", "write the page to this file instead of a temporary one")

	cmd.AddCommand(newLabelsCmd(a), newSnapshotCmd(a))

	return cmd
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return "stdin"
	}

	return args[0]
}

// setup loads the config file and builds the logger. Flags override the file.
func (a *app) setup(cmd *cobra.Command) error {
	path, explicit := a.flags.configPath, a.flags.configPath != ""
	if !explicit {
		path = defaultConfigPath()
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if a.flags.timeLabel != "" {
		cfg.Time = a.flags.timeLabel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger = logging.New(logging.Config{Level: level, JSON: cfg.LogJSON, Output: cmd.ErrOrStderr()})

	return nil
}

// load reads path into a frozen Fox.
func (a *app) load(cmd *cobra.Command, path string) (*foxplot.Fox, error) {
	opts := []foxplot.Option{foxplot.WithLogger(a.logger)}
	if a.config.Time != "" {
		opts = append(opts, foxplot.WithTime(a.config.Time))
	}

	if strings.HasSuffix(path, foxplot.SnapshotExtension) {
		return foxplot.Open(path, opts...)
	}

	fox, err := foxplot.New(opts...)
	if err != nil {
		return nil, err
	}
	err = fox.ReadFile(path,
		decode.WithStdin(cmd.InOrStdin()),
		decode.WithChunkSize(a.config.ChunkSize),
	)
	if err != nil {
		return nil, err
	}
	if err := fox.Freeze(); err != nil {
		return nil, err
	}
	a.logger.Info("loaded", slog.String("path", path), slog.Int("records", fox.Len()))

	return fox, nil
}

func (a *app) runPlot(cmd *cobra.Command, path string, pf plotFlags) error {
	fox, err := a.load(cmd, path)
	if err != nil {
		return err
	}
	if len(pf.left)+len(pf.right) == 0 {
		return printLabels(cmd.OutOrStdout(), fox)
	}

	left, err := lookupAll(fox, pf.left)
	if err != nil {
		return err
	}
	right, err := lookupAll(fox, pf.right)
	if err != nil {
		return err
	}

	opts := plot.Options{
		Title:       pf.title,
		LeftUnit:    firstNonEmpty(pf.leftUnit, a.config.LeftUnit),
		RightUnit:   firstNonEmpty(pf.rightUnit, a.config.RightUnit),
		Timestamped: fox.TimeLabel() != "",
	}
	if opts.Title == "" {
		opts.Title = plot.DefaultTitle(time.Now())
	}
	html, err := plot.GenerateHTML(fox.Times(), left, right, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var url string
	if pf.output != "" {
		if err := os.WriteFile(pf.output, []byte(html), 0o644); err != nil { //nolint:gosec
			return err
		}
		fmt.Fprintf(out, "Plot written to %s\n", pf.output)
		url = "file://" + pf.output
	} else {
		if url, err = plot.WriteTempFile(html); err != nil {
			return err
		}
	}

	if !pf.noOpen && !a.config.NoOpen {
		if err := plot.OpenBrowser(cmd.Context(), url); err != nil {
			a.logger.Warn("cannot open browser", slog.String("url", url), slog.Any("error", err))
		} else {
			fmt.Fprint(out, "New tab opened in your web browser! ")
		}
	}

	file := ""
	if !decode.IsStdin(path) {
		file = path
	}
	fmt.Fprintf(out, "The command line to produce it directly is:\n\n%s\n",
		plot.CommandLine(file, fox.TimeLabel(), pf.left, pf.right))

	return nil
}

func lookupAll(fox *foxplot.Fox, labels []string) ([]*series.Series, error) {
	out := make([]*series.Series, 0, len(labels))
	for _, label := range labels {
		s, err := fox.Series(label)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

func printLabels(w io.Writer, fox *foxplot.Fox) error {
	for _, label := range fox.Labels() {
		if _, err := fmt.Fprintln(w, label); err != nil {
			return err
		}
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
