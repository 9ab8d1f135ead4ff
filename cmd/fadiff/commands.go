package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/born-ml/fadiff/internal/fad"
)

// app holds flag values shared by the subcommands.
type app struct {
	jsonOutput bool
	verbose    bool
	noColor    bool
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fadiff",
		Short: "Forward-mode automatic differentiation of scalar expressions",
		Long: `fadiff evaluates arithmetic expressions over named input variables
and reports each result together with its partial derivatives.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log input registration")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable styled output")

	root.AddCommand(newVersionCmd(), newEvalCmd(a), newRunCmd(a))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fadiff %s\n", version)
		},
	}
}

func newEvalCmd(a *app) *cobra.Command {
	var (
		vars     []string
		modeFlag string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate one expression",
		Example: `  fadiff eval "x * y" --var x=3 --var y=4
  fadiff eval "x ^ 3" --var x=2:0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := fad.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			inputs, err := parseVars(vars)
			if err != nil {
				return err
			}
			opts := []fad.Option{fad.WithMode(mode), fad.WithLogger(a.logger)}
			if strict {
				opts = append(opts, fad.WithStrictFinite())
			}
			job := sessionJob{
				opts:        opts,
				inputs:      inputs,
				expressions: []namedExpr{{expr: args[0]}},
			}
			return a.execute(cmd.OutOrStdout(), job)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "input variable as name=value[:seed], repeatable, registered in order")
	cmd.Flags().StringVar(&modeFlag, "mode", "forward", "differentiation mode (forward|reverse)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on NaN or infinite results")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run SESSION.yaml",
		Short: "Evaluate every expression of a session file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := loadSessionJob(args[0], a.logger)
			if err != nil {
				return err
			}
			return a.execute(cmd.OutOrStdout(), job)
		},
	}
}

// useColor reports whether w is a terminal and styling is not disabled.
func (a *app) useColor(w io.Writer) bool {
	if a.noColor || a.jsonOutput {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
