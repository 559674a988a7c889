package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iley/fang/internal/codegen"
)

var (
	outputFile string
	jobs       int
)

var buildCmd = &cobra.Command{
	Use:   "build <program.json>...",
	Short: "Generate assembly for one or more programs",
	Long: "Generate x86-64 assembly for each program document. Without -o every input " +
		"is written next to itself with a .s extension.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" && len(args) > 1 {
			return fmt.Errorf("output file (-o) can only be used with a single input")
		}
		target, err := codegen.TargetFromName(targetName)
		if err != nil {
			return err
		}

		outputs := make([]string, len(args))
		for i, input := range args {
			outputs[i] = defaultOutputPath(input)
		}
		if outputFile != "" {
			outputs[0] = outputFile
		}
		return buildAll(target, args, outputs, jobs)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file name (- for standard output)")
	buildCmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of programs to build in parallel")
	rootCmd.AddCommand(buildCmd)
}

// buildAll generates inputs[i] into outputs[i], at most jobs at a time. Every
// build has its own generator state, so builds never share labels.
func buildAll(target codegen.Target, inputs, outputs []string, jobs int) error {
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i := range inputs {
		input, output := inputs[i], outputs[i]
		g.Go(func() error {
			return buildFile(target, input, output)
		})
	}
	return g.Wait()
}
