// Package batch migrates every note under a directory tree.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/flashmigrate/internal/config"
	"github.com/gerunddev/flashmigrate/internal/logger"
	"github.com/gerunddev/flashmigrate/internal/migrate"
	"github.com/gerunddev/flashmigrate/internal/state"
)

// Runner migrates a source tree into a destination tree
type Runner struct {
	config   *config.Config
	state    *state.State
	migrator *migrate.Migrator
	log      *logger.Logger
	force    bool
}

// NewRunner creates a new batch runner
func NewRunner(cfg *config.Config, st *state.State) *Runner {
	return &Runner{
		config:   cfg,
		state:    st,
		migrator: migrate.New(cfg.MigrateOptions()),
		log:      logger.Discard(),
	}
}

// SetLogger sets the logger used for per-file events
func (r *Runner) SetLogger(l *logger.Logger) {
	r.log = l
}

// SetForce makes the runner migrate files the state reports as unchanged
func (r *Runner) SetForce(force bool) {
	r.force = force
}

// Result represents the result of a batch run
type Result struct {
	RunID         string
	FilesScanned  int
	FilesMigrated int
	FilesSkipped  int
	Cards         int
	Errors        []error
	StartTime     time.Time
	EndTime       time.Time
}

// Run migrates every matching file under srcDir into the same relative path
// under dstDir. Per-file failures are collected in the result; walking
// failures and cancellation abort the run.
func (r *Runner) Run(ctx context.Context, srcDir, dstDir string) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	defer func() {
		result.EndTime = time.Now()
	}()

	srcDir, err := filepath.Abs(srcDir)
	if err != nil {
		return result, err
	}
	dstDir, err = filepath.Abs(dstDir)
	if err != nil {
		return result, err
	}
	if srcDir == dstDir {
		return result, fmt.Errorf("source and destination must differ: %s", srcDir)
	}

	r.log.BatchStarted(result.RunID, srcDir, dstDir)

	files, err := ScanDirectory(srcDir, dstDir, r.config.HasExtension)
	if err != nil {
		return result, fmt.Errorf("failed to scan %s: %w", srcDir, err)
	}
	result.FilesScanned = len(files)

	for _, input := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rel, err := filepath.Rel(srcDir, input)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		output := filepath.Join(dstDir, rel)

		if !r.force {
			changed, reason, err := r.state.HasChanged(input, output)
			if err != nil {
				r.log.FileError(input, err)
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", input, err))
				continue
			}
			if !changed {
				r.log.FileSkipped(input, reason)
				result.FilesSkipped++
				continue
			}
		}

		cards, err := r.migrateFile(input, output, result.RunID)
		if err != nil {
			r.log.FileError(input, err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", input, err))
			continue
		}
		result.FilesMigrated++
		result.Cards += cards
	}

	r.state.LastRunID = result.RunID
	r.log.BatchCompleted(result.RunID, result.FilesMigrated, result.FilesSkipped, len(result.Errors), time.Since(result.StartTime))

	return result, nil
}

func (r *Runner) migrateFile(input, output, runID string) (int, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	res := r.migrator.Run(string(data))

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(res.Text), 0644); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}

	if err := r.state.Update(input, output, res.Cards, runID); err != nil {
		r.log.StateError("update", err)
	}

	r.log.FileMigrated(input, output, res.Cards, res.DeckTag)
	return res.Cards, nil
}

// ScanDirectory returns the files under dir accepted by match, in lexical
// order. Hidden directories and the exclude directory are not descended into.
func ScanDirectory(dir, exclude string, match func(string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && (path == exclude || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && match(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// String returns a human-readable summary of the batch result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Migration complete: %d files migrated, %d skipped, %d cards, %d errors (took %v)",
		r.FilesMigrated,
		r.FilesSkipped,
		r.Cards,
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}
