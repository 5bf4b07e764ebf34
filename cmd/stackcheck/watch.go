package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lex00/stackcheck-go/internal/lint"
	"github.com/lex00/stackcheck-go/internal/template"
)

// newWatchCmd creates the "watch" subcommand for auto-validating on file changes.
func newWatchCmd() *cobra.Command {
	var (
		withLint bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <template...>",
		Short: "Auto-validate on template file changes",
		Long: `Watch monitors template files for changes and automatically revalidates.

The watch command:
- Monitors each template's directory for changes
- Runs validation on each change
- Optionally runs cfn-lint rules after validation (--lint)
- Debounces rapid changes to avoid excessive runs

Examples:
    stackcheck watch template.yaml
    stackcheck watch api.yaml worker.yaml --lint
    stackcheck watch template.yaml --debounce 1s`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args, watchOptions{
				withLint: withLint,
				debounce: debounce,
			})
		},
	}

	cmd.Flags().BoolVar(&withLint, "lint", false, "Also run cfn-lint rules on each change")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")

	return cmd
}

type watchOptions struct {
	withLint bool
	debounce time.Duration
}

// runWatch monitors the template files and revalidates on changes.
func runWatch(paths []string, opts watchOptions) error {
	watched := make(map[string]bool, len(paths))
	var absPaths []string
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if !watched[abs] {
			watched[abs] = true
			absPaths = append(absPaths, abs)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Watch directories: editors replace files, which drops file watches.
	dirs := make(map[string]bool)
	for _, abs := range absPaths {
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			dirs[dir] = true
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fmt.Printf("Watching: %s\n", abs)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initial check
	fmt.Println("Running initial validation...")
	runWatchChecks(absPaths, opts)

	// Debounce timer
	var debounceTimer *time.Timer
	recheckChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !watchedFile(event.Name, watched) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case recheckChan <- struct{}{}:
				default:
				}
			})

		case <-recheckChan:
			fmt.Printf("\n[%s] Change detected, revalidating...\n", time.Now().Format("15:04:05"))
			runWatchChecks(absPaths, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// watchedFile reports whether an event path is one of the watched
// templates, accounting for editor backup suffixes.
func watchedFile(eventPath string, watched map[string]bool) bool {
	abs, err := filepath.Abs(eventPath)
	if err != nil {
		return false
	}
	return watched[abs] || watched[strings.TrimSuffix(abs, "~")]
}

// runWatchChecks validates each template and optionally lints it.
func runWatchChecks(paths []string, opts watchOptions) {
	for _, path := range paths {
		runWatchCheck(path, opts)
	}
}

func runWatchCheck(path string, opts watchOptions) {
	tmpl, err := template.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: validation error: %v\n", filepath.Base(path), err)
		return
	}

	fmt.Printf("%s: validation passed: %d resources, %d parameters, %d outputs OK\n",
		filepath.Base(path), len(tmpl.Resources), len(tmpl.Parameters), len(tmpl.Outputs))

	if !opts.withLint {
		return
	}

	result, err := lint.Run(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: lint error: %v\n", filepath.Base(path), err)
		return
	}

	if len(result.Issues) == 0 {
		fmt.Printf("%s: lint passed\n", filepath.Base(path))
		return
	}

	for _, issue := range result.Issues {
		fmt.Println(formatLintIssue(issue))
	}
}
