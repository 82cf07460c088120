package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cottand/coeffects/internal/log"
	"github.com/cottand/coeffects/problem"
	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var SolveCmd = &cobra.Command{
	Use:          "solve file.yaml...",
	Short:        "Solve the constraint problems of YAML problem files",
	RunE:         runSolve,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	logLevel *int
	check    *bool
	dump     *bool
)

func init() {
	logLevel = SolveCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
	check = SolveCmd.Flags().Bool("check", false, "compare every solved problem against its expectation")
	dump = SolveCmd.Flags().Bool("dump", false, "dump the parsed problems before solving them")
}

func loadProblems(paths []string) ([]problem.Problem, error) {
	var problems []problem.Problem
	for _, p := range paths {
		target, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("could not get absolute path of target: %w", err)
		}
		loaded, err := problem.LoadFile(os.DirFS(filepath.Dir(target)), filepath.Base(target))
		if err != nil {
			return nil, err
		}
		problems = append(problems, loaded...)
	}
	return problems, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))
	log.SetOutput(cmd.ErrOrStderr())

	problems, err := loadProblems(args)
	if err != nil {
		return fmt.Errorf("could not load problems: %w", err)
	}
	out := cmd.OutOrStdout()
	if *dump {
		_, _ = fmt.Fprint(out, spew.Sdump(problems))
	}

	outcomes, err := problem.SolveAll(cmd.Context(), problems)
	if err != nil {
		return err
	}

	failed := WriteOutcomes(out, outcomes, isTerminal(out), *check)

	switch {
	case failed > 0 && *check:
		return fmt.Errorf("%d of %d problems did not match their expectation", failed, len(outcomes))
	case failed > 0:
		return fmt.Errorf("%d of %d problems could not be solved", failed, len(outcomes))
	}
	return nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
