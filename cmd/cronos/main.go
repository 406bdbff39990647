package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cronos/internal/bootstrap"
	routinedto "cronos/internal/modules/routine/dto"
	"cronos/internal/platform/config"
	"cronos/internal/platform/logging"
	"cronos/internal/ui/format"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir   string
	logStderr bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "cronos",
		Short:         "Interval timer for workout and focus routines",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: user config dir)")
	root.PersistentFlags().BoolVar(&flags.logStderr, "log-stderr", false, "log to stderr instead of the data dir log file")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newRoutineCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	return root
}

// loadApp builds the application; the returned func releases the store and the log file.
func loadApp(flags *globalFlags) (*bootstrap.App, func(), error) {
	cfg, err := config.Load(flags.dataDir)
	if err != nil {
		return nil, nil, err
	}
	logPath := cfg.LogPath
	if flags.logStderr {
		logPath = ""
	}
	logger, logCloser, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	return app, func() {
		if err := app.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
		_ = logCloser.Close()
	}, nil
}

func runTUI(ctx context.Context, flags *globalFlags) error {
	app, done, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer done()
	return bootstrap.RunTUI(ctx, app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the cronos terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "run [routine-id]",
		Short: "Run a routine in the current terminal without the full-screen UI",
		Long:  "Run a routine with a single status line. Type p, s, +, - or q followed by enter to pause, skip, adjust or quit. Without a routine id the interrupted session is resumed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, done, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer done()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			opts := bootstrap.HeadlessOptions{AssumeYes: yes, In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if len(args) == 1 {
				opts.RoutineID = args[0]
			}
			return bootstrap.RunHeadless(ctx, app, opts)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "quit without asking for confirmation")
	return cmd
}

func newRoutineCmd(flags *globalFlags) *cobra.Command {
	routine := &cobra.Command{Use: "routine", Short: "Create and edit routines"}

	routine.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List routines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer done()
			routines, err := app.RoutineCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(routines) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no routines")
				return nil
			}
			for _, r := range routines {
				last := "never"
				if !r.LastPlayed.IsZero() {
					last = r.LastPlayed.Local().Format("2006-01-02 15:04")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d blocks\t%s\tlast played %s\n",
					r.ID, r.Name, r.BlockCount, format.Clock(r.TotalDuration), last)
			}
			return nil
		},
	})

	routine.AddCommand(&cobra.Command{
		Use:   "show <routine-id>",
		Short: "Show a routine and its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutine(cmd, flags, func(ctx context.Context, app *bootstrap.App) (routinedto.RoutineDetailOutput, error) {
				return app.RoutineCLI.Show(ctx, args[0])
			})
		},
	})

	var blockSpecs []string
	createCmd := &cobra.Command{
		Use:     "create <name>",
		Short:   "Create a routine",
		Example: "  cronos routine create Intervals --block prep:30 --block work:40:Burpees --block rest:20",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks := make([]routinedto.BlockInput, 0, len(blockSpecs))
			for _, spec := range blockSpecs {
				b, err := routinedto.ParseBlockSpec(spec)
				if err != nil {
					return err
				}
				blocks = append(blocks, b)
			}
			return withRoutine(cmd, flags, func(ctx context.Context, app *bootstrap.App) (routinedto.RoutineDetailOutput, error) {
				return app.RoutineCLI.Create(ctx, args[0], blocks)
			})
		},
	}
	createCmd.Flags().StringArrayVar(&blockSpecs, "block", nil, "block as KIND:seconds[:name]; repeat for each block")
	routine.AddCommand(createCmd)

	routine.AddCommand(&cobra.Command{
		Use:   "rename <routine-id> <name>",
		Short: "Rename a routine",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutine(cmd, flags, func(ctx context.Context, app *bootstrap.App) (routinedto.RoutineDetailOutput, error) {
				return app.RoutineCLI.Rename(ctx, args[0], strings.Join(args[1:], " "))
			})
		},
	})

	routine.AddCommand(newAddBlockCmd(flags))
	routine.AddCommand(newUpdateBlockCmd(flags))

	routine.AddCommand(&cobra.Command{
		Use:   "move-block <routine-id> <position> <up|down>",
		Short: "Move a block one place up or down",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			var dir int
			switch args[2] {
			case "up":
				dir = -1
			case "down":
				dir = 1
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[2])
			}
			return withRoutine(cmd, flags, func(ctx context.Context, app *bootstrap.App) (routinedto.RoutineDetailOutput, error) {
				return app.RoutineCLI.MoveBlock(ctx, args[0], pos-1, dir)
			})
		},
	})

	routine.AddCommand(&cobra.Command{
		Use:   "duplicate-block <routine-id> <block-id>",
		Short: "Append a copy of a block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutine(cmd, flags, func(ctx context.Context, app *bootstrap.App) (routinedto.RoutineDetailOutput, error) {
				return app.RoutineCLI.DuplicateBlock(ctx, args[0], args[1])
			})
		},
	})

	routine.AddCommand(&cobra.Command{
		Use:   "remove-block <routine-id> <block-id>",
		Short: "Remove a block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutine(cmd, flags, func(ctx context.Context, app *bootstrap.App) (routinedto.RoutineDetailOutput, error) {
				return app.RoutineCLI.RemoveBlock(ctx, args[0], args[1])
			})
		},
	})

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <routine-id>",
		Short: "Delete a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, done, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer done()
			target, err := app.RoutineCLI.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete routine %q?", target.Name)) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			if err := app.RoutineCLI.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", target.Name)
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	routine.AddCommand(deleteCmd)

	return routine
}

func newAddBlockCmd(flags *globalFlags) *cobra.Command {
	var (
		name      string
		blockType string
		duration  int
		position  int
	)
	cmd := &cobra.Command{
		Use:   "add-block <routine-id>",
		Short: "Add a block to a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var at *int
			if position > 0 {
				idx := position - 1
				at = &idx
			}
			if name == "" {
				name = routinedto.DefaultBlockName(blockType)
			}
			return withRoutine(cmd, flags, func(ctx context.Context, app *bootstrap.App) (routinedto.RoutineDetailOutput, error) {
				return app.RoutineCLI.AddBlock(ctx, args[0], name, duration, blockType, at)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "block name (default: the kind)")
	cmd.Flags().StringVar(&blockType, "type", "WORK", "block kind: PREP|WORK|REST|OTHER")
	cmd.Flags().IntVar(&duration, "duration", 30, "duration in seconds")
	cmd.Flags().IntVar(&position, "at", 0, "1-based position to insert at (default: append)")
	return cmd
}

func newUpdateBlockCmd(flags *globalFlags) *cobra.Command {
	var (
		name      string
		blockType string
		duration  int
	)
	cmd := &cobra.Command{
		Use:   "update-block <routine-id> <block-id>",
		Short: "Change a block's name, kind or duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := routinedto.UpdateBlockInput{RoutineID: args[0], BlockID: args[1]}
			if cmd.Flags().Changed("name") {
				input.Name = &name
			}
			if cmd.Flags().Changed("type") {
				input.Type = &blockType
			}
			if cmd.Flags().Changed("duration") {
				input.Duration = &duration
			}
			return withRoutine(cmd, flags, func(ctx context.Context, app *bootstrap.App) (routinedto.RoutineDetailOutput, error) {
				return app.RoutineCLI.UpdateBlock(ctx, input)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new block name")
	cmd.Flags().StringVar(&blockType, "type", "", "new block kind: PREP|WORK|REST|OTHER")
	cmd.Flags().IntVar(&duration, "duration", 0, "new duration in seconds")
	return cmd
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Session history"}

	history.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer done()
			entries, err := app.HistoryCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions yet")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-9s\t%s\t%s\n",
					e.Date.Local().Format("2006-01-02 15:04"), e.Status, format.Clock(e.TotalTime), e.RoutineName)
			}
			summary, err := app.HistoryCLI.Summary(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d sessions, %d completed, %d aborted, %s trained\n",
				summary.Sessions, summary.Completed, summary.Aborted, format.Clock(summary.TotalTime))
			return nil
		},
	})
	return history
}

// withRoutine runs one routine operation and prints the resulting routine.
func withRoutine(cmd *cobra.Command, flags *globalFlags, fn func(context.Context, *bootstrap.App) (routinedto.RoutineDetailOutput, error)) error {
	app, done, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer done()
	detail, err := fn(cmd.Context(), app)
	if err != nil {
		return err
	}
	printRoutine(cmd.OutOrStdout(), detail)
	return nil
}

func printRoutine(w io.Writer, d routinedto.RoutineDetailOutput) {
	_, _ = fmt.Fprintf(w, "%s (%s) total %s\n", d.Name, d.ID, format.Clock(d.TotalDuration))
	for i, b := range d.Blocks {
		_, _ = fmt.Fprintf(w, "  %2d. %-5s %6s  %s  [%s]\n", i+1, b.Type, format.Clock(b.Duration), b.Name, b.ID)
	}
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
