package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/document"
	"github.com/iley/fang/internal/tac"
)

var astCmd = &cobra.Command{
	Use:   "ast <program.json>",
	Short: "Print the syntax tree of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := document.LoadFile(args[0])
		if err != nil {
			return err
		}
		sexpr, _ := cmd.Flags().GetBool("sexpr")
		if sexpr {
			fmt.Fprintln(cmd.OutOrStdout(), doc.Program.String())
			return nil
		}
		ast.NewPrinter(cmd.OutOrStdout(), doc.Symbols).PrintProgram(doc.Program)
		return nil
	},
}

var tacCmd = &cobra.Command{
	Use:   "tac <program.json>",
	Short: "Print the three-address code of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := document.LoadFile(args[0])
		if err != nil {
			return err
		}
		tac.NewGenerator().Generate(doc.Program).Print(cmd.OutOrStdout())
		return nil
	},
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols <program.json>",
	Short: "Print the symbol table of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := document.LoadFile(args[0])
		if err != nil {
			return err
		}
		doc.Symbols.Print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	astCmd.Flags().Bool("sexpr", false, "print the tree as a single S-expression")
	rootCmd.AddCommand(astCmd, tacCmd, symbolsCmd)
}
