package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iley/fang/internal/codegen"
	"github.com/iley/fang/internal/document"
)

var (
	verbose    bool
	targetName string
)

var rootCmd = &cobra.Command{
	Use:   "fangc",
	Short: "Fang compiler backend",
	Long:  "Turns Fang program documents (AST plus symbol table) into x86-64 assembly.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&targetName, "target", "t", "x86_64-linux", "target architecture")
}

func main() {
	log.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		log.Error("fangc failed", "err", err)
		os.Exit(1)
	}
}

// buildFile loads one document and writes its assembly to outputPath.
// An outputPath of "-" means standard output.
func buildFile(target codegen.Target, inputPath, outputPath string) error {
	doc, err := document.LoadFile(inputPath)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		return codegen.Generate(os.Stdout, target, doc.Program, doc.Symbols)
	}
	if err := codegen.GenerateFile(outputPath, target, doc.Program, doc.Symbols); err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	log.Info("wrote assembly", "input", inputPath, "output", outputPath)
	return nil
}

// defaultOutputPath replaces the extension of inputPath with .s.
func defaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".s"
}
