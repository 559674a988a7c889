package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/iley/fang/internal/codegen"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch <program.json>",
	Short: "Regenerate assembly whenever a program changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := codegen.TargetFromName(targetName)
		if err != nil {
			return err
		}
		output := watchOutput
		if output == "" {
			output = defaultOutputPath(args[0])
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, target, args[0], output, nil)
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output file name")
	rootCmd.AddCommand(watchCmd)
}

// watch builds input once and then again on every write to it, until ctx is
// done. Build failures are logged and do not stop the loop. When built is not
// nil it receives the result of every build.
func watch(ctx context.Context, target codegen.Target, input, output string, built chan<- error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace files instead of writing them, so watch the directory.
	input = filepath.Clean(input)
	if err := w.Add(filepath.Dir(input)); err != nil {
		return err
	}

	rebuild := func() {
		err := buildFile(target, input, output)
		if err != nil {
			log.Error("build failed", "input", input, "err", err)
		}
		if built != nil {
			built <- err
		}
	}

	rebuild()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != input {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.Debug("input changed", "input", input, "op", ev.Op)
				rebuild()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)
		}
	}
}
