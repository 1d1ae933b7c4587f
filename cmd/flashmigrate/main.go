package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gerunddev/flashmigrate/internal/batch"
	"github.com/gerunddev/flashmigrate/internal/config"
	"github.com/gerunddev/flashmigrate/internal/diff"
	"github.com/gerunddev/flashmigrate/internal/logger"
	"github.com/gerunddev/flashmigrate/internal/migrate"
	"github.com/gerunddev/flashmigrate/internal/state"
	"github.com/gerunddev/flashmigrate/internal/styles"
)

const version = "0.1.0"

// usageError marks failures caused by how the command was invoked
type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

type options struct {
	configPath string
	dryRun     bool
	dir        bool
	force      bool
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit status
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var usageErr usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "Error: %s\n\n", usageErr.msg)
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}

	fmt.Fprintln(stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
	return 1
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "flashmigrate [flags] <input-path> <output-path>",
		Short: "Convert Flashcards-plugin notes to Spaced Repetition cards",
		Long: `flashmigrate - Migrate Obsidian Flashcards notes to Spaced Repetition cards

Headings ending in #card become a heading followed by a multi-line card:
the heading text, a "?" separator and the answer block below it. The
frontmatter cards-deck field becomes a #flashcards/<deck> tag in the body
and "card" is dropped from the frontmatter tags.`,
		Example: `  flashmigrate notes/verbs.md out/verbs.md
  flashmigrate --dry-run notes/verbs.md out/verbs.md
  flashmigrate --dir vault/ migrated-vault/`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageError{msg: fmt.Sprintf("expected <input-path> and <output-path>, got %d argument(s)", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), opts, args[0], args[1], stdout)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.ConfigPath()+")")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the changes as a diff instead of writing the output")
	flags.BoolVar(&opts.dir, "dir", false, "treat both paths as directories and migrate every note")
	flags.BoolVar(&opts.force, "force", false, "with --dir, migrate files even if unchanged since the last run")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func execute(ctx context.Context, opts *options, input, output string, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, cleanup, err := newLogger(cfg, opts.verbose)
	if err != nil {
		return err
	}
	defer cleanup()
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	l.ConfigLoaded(configPath, cfg.CardTag, cfg.DeckKey)

	if opts.dir {
		if opts.dryRun {
			return usageError{msg: "--dry-run cannot be combined with --dir"}
		}
		return migrateDir(ctx, cfg, l, opts.force, input, output, stdout)
	}
	return migrateFile(cfg, l, opts.dryRun, input, output, stdout)
}

func newLogger(cfg *config.Config, verbose bool) (*logger.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		level = log.DebugLevel
	}

	if cfg.LogFile != "" {
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile, level)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return l, cleanup, nil
	}

	return logger.NewWithLevel(os.Stderr, level), func() {}, nil
}

func migrateFile(cfg *config.Config, l *logger.Logger, dryRun bool, input, output string, stdout io.Writer) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	res := migrate.New(cfg.MigrateOptions()).Run(string(data))

	if dryRun {
		unified := diff.Generate(input, string(data), res.Text)
		if unified == "" {
			fmt.Fprintln(stdout, styles.DimStyle.Render("No changes"))
			return nil
		}
		fmt.Fprint(stdout, diff.Render(unified, 120))
		return nil
	}

	if err := os.WriteFile(output, []byte(res.Text), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	l.FileMigrated(input, output, res.Cards, res.DeckTag)

	fmt.Fprintln(stdout, styles.SuccessStyle.Render("Done. Wrote migrated file to: "+output))
	return nil
}

func migrateDir(ctx context.Context, cfg *config.Config, l *logger.Logger, force bool, src, dst string, stdout io.Writer) error {
	st, err := state.Load(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	runner := batch.NewRunner(cfg, st)
	runner.SetLogger(l)
	runner.SetForce(force)

	result, runErr := runner.Run(ctx, src, dst)

	if err := st.Save(cfg.StateFile); err != nil {
		l.StateError("save", err)
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintln(stdout, styles.SuccessStyle.Render("Done. "+result.String()))
	for _, fileErr := range result.Errors {
		fmt.Fprintln(stdout, styles.WarningStyle.Render("  ✗ "+fileErr.Error()))
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d file(s) failed to migrate", len(result.Errors))
	}
	return nil
}
