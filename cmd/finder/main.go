// Package main is the award-finder command line tool. It runs a search
// described by a YAML file and prints the ranked awards.
package main

import (
	"errors"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/award-search/award-flight-finder/internal/config"
	"github.com/award-search/award-flight-finder/internal/domain"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrInvalidRequest), isConfigurationError(err):
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitUsage
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitFailure
	}
}

func isConfigurationError(err error) bool {
	return errors.Is(err, domain.ErrUnknownProgram) ||
		errors.Is(err, domain.ErrUnknownCreditCard) ||
		errors.Is(err, domain.ErrEmptyQueryPlan) ||
		errors.Is(err, domain.ErrQueryBudgetExceeded) ||
		errors.Is(err, config.ErrMissingAPIKey)
}
