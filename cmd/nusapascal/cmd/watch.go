package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-check a source file whenever it changes",
	Long: `Watch a NusaPascal source file and re-run the full front end on
every write. The automaton rule file is watched too, so edits to either
re-trigger a check. Parent directories are watched so editors that replace
files on save are still picked up.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	rules, err := filepath.Abs(rulesFile)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	if filepath.Dir(rules) != filepath.Dir(path) {
		if err := watcher.Add(filepath.Dir(rules)); err != nil {
			return err
		}
	}

	fmt.Println(renderMuted(fmt.Sprintf("watching %s (rules: %s)", path, rules)))
	reportCheck(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path && event.Name != rules {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fmt.Println(renderMuted(fmt.Sprintf("change detected: %s", event.Op)))
			reportCheck(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Println(renderError(err.Error()))
		}
	}
}

// reportCheck runs one front end pass and prints the outcome without
// terminating the watch loop on failure.
func reportCheck(path string) {
	_, _, diags, err := checkFile(path)
	if err != nil {
		fmt.Println(renderError(err.Error()))
		return
	}

	var out strings.Builder
	renderDiagnostics(&out, diags)
	fmt.Print(out.String())
}
