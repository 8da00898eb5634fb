package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/qsimlab/spindle/internal/modules/display"
	"github.com/qsimlab/spindle/internal/modules/matrix"
	"github.com/qsimlab/spindle/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var partialTranspose int

	cmd := &cobra.Command{
		Use:   "spindle <size> <left_sz> <right_sz>",
		Short: "Compute and display a qubit matrix state",
		Long: `Builds the tensor-product matrix of two spin subsystems after applying
the sz operator to each, then reports the matrix coefficients, eigenvalues
and negativity.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := parseIntArg("size", args[0])
			if err != nil {
				return err
			}
			leftSz, err := parseIntArg("left_sz", args[1])
			if err != nil {
				return err
			}
			rightSz, err := parseIntArg("right_sz", args[2])
			if err != nil {
				return err
			}

			var transpose *int
			if cmd.Flags().Changed("partial-transpose") {
				transpose = &partialTranspose
			}
			return run(size, leftSz, rightSz, transpose)
		},
	}

	cmd.Flags().IntVarP(&partialTranspose, "partial-transpose", "p", 0,
		"amount of partial transpose (must be <= size)")

	return cmd
}

func run(size, leftSz, rightSz int, transpose *int) error {
	log := logger.New(logger.Config{Level: "info", Pretty: true})

	log.Info().
		Int("size", size).
		Int("left_sz", leftSz).
		Int("right_sz", rightSz).
		Msg("Starting matrix state computation")

	started := time.Now()
	state, err := matrix.New(size, leftSz, rightSz, log)
	if err != nil {
		return err
	}
	duration := time.Since(started)

	if transpose != nil {
		log.Info().Int("k", *transpose).Msg("Applying partial transpose")
		if err := state.PartialTranspose(*transpose); err != nil {
			return err
		}
	}

	fmt.Print(display.MatrixTable(state))
	fmt.Print(display.EigenvalueReport(state))
	fmt.Print(display.NegativityReport(state))

	log.Info().Dur("duration_ms", duration).Msg("Computed matrix")
	return nil
}

func parseIntArg(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("argument %s must be an integer, got %q", name, value)
	}
	return n, nil
}
