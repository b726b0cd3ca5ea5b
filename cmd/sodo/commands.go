package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/generator"
	"svw.info/sodo/internal/hint"
	"svw.info/sodo/internal/solver"
	"svw.info/sodo/internal/validator"
)

// puzzleArg reads the puzzle from the positional argument or --file.
func puzzleArg(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", fmt.Errorf("expected a puzzle string or --file")
}

func newSolveCmd() *cobra.Command {
	var file string
	var pretty bool
	cmd := &cobra.Command{
		Use:     "solve [puzzle]",
		Aliases: []string{"s"},
		Short:   "Solve a puzzle given in compact form",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := puzzleArg(args, file)
			if err != nil {
				return err
			}
			g, err := domain.ParseCompact(text)
			if err != nil {
				return err
			}
			out, st, err := solver.NewBacktrackingSolver().Solve(cmd.Context(), g)
			if err != nil {
				return err
			}
			if pretty {
				fmt.Print(domain.FormatPretty(out))
			} else {
				fmt.Println(domain.FormatCompact(out))
			}
			fmt.Fprintf(os.Stderr, "solved in %v (nodes=%d forced=%d guesses=%d)\n",
				st.Duration.Round(time.Microsecond), st.Nodes, st.Forced, st.Guesses)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read puzzle from file")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "print with box separators")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var difficulty string
	var box int
	var seed int64
	var showSolution, pretty bool
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate a puzzle with a unique solution",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := domain.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			gen := generator.NewUniqueGenerator(solver.NewBacktrackingSolver())
			p, st, err := gen.Generate(cmd.Context(), seed, diff, box)
			if err != nil {
				return err
			}
			if pretty {
				fmt.Print(domain.FormatPretty(p.Puzzle))
			} else {
				fmt.Println(domain.FormatCompact(p.Puzzle))
			}
			if showSolution {
				fmt.Println(domain.FormatCompact(p.Solution))
			}
			fmt.Fprintf(os.Stderr, "%s, %d givens, seed %d (%v)\n",
				p.Difficulty, p.Puzzle.Givens(), p.Seed, st.Duration.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "easy|medium|hard|expert")
	cmd.Flags().IntVarP(&box, "box", "b", 3, "box size (3 = 9x9 board)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().BoolVar(&showSolution, "solution", false, "also print the solution")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "print with box separators")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "validate [puzzle]",
		Aliases: []string{"v"},
		Short:   "Check a grid for row/column/box conflicts",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := puzzleArg(args, file)
			if err != nil {
				return err
			}
			g, err := domain.ParseCompact(text)
			if err != nil {
				return err
			}
			ok, conflicts, err := validator.New().ValidateGrid(cmd.Context(), g)
			if err != nil {
				return err
			}
			if !ok {
				for _, cc := range conflicts {
					fmt.Printf("conflict at row %d, column %d\n", cc.Row+1, cc.Col+1)
				}
				return fmt.Errorf("invalid grid (%d conflicts)", len(conflicts))
			}
			fmt.Println("valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read puzzle from file")
	return cmd
}

func newHintCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "hint [puzzle]",
		Aliases: []string{"h"},
		Short:   "Suggest one safe next step",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := puzzleArg(args, file)
			if err != nil {
				return err
			}
			g, err := domain.ParseCompact(text)
			if err != nil {
				return err
			}
			h := hint.NewStepHinter(solver.NewBacktrackingSolver())
			hh, found, err := h.Hint(cmd.Context(), g)
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("no hint available")
				return nil
			}
			fmt.Printf("place %d at row %d, column %d (%s: %s)\n",
				hh.Value, hh.Cell.Row+1, hh.Cell.Col+1, hh.Kind, hh.Message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read puzzle from file")
	return cmd
}
