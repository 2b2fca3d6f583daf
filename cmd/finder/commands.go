package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/award-search/award-flight-finder/internal/adapter/render"
	"github.com/award-search/award-flight-finder/internal/app"
	"github.com/award-search/award-flight-finder/internal/catalog"
	"github.com/award-search/award-flight-finder/internal/config"
	"github.com/award-search/award-flight-finder/internal/infrastructure/logger"
	"github.com/award-search/award-flight-finder/internal/usecase"
)

type searchFlags struct {
	configPath   string
	format       string
	showSegments bool
	verbose      bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "award-finder",
		Short:         "Find award flights across loyalty programs",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newSearchCmd(), newProgramsCmd(), newCardsCmd())
	return root
}

func newSearchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run the search described by a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSearch(ctx, cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "config.yaml", "search file")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: table or csv (overrides output.format)")
	cmd.Flags().BoolVar(&flags.showSegments, "show-segments", false, "print the segments of each itinerary")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log query progress to stderr")
	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, flags searchFlags) error {
	sf, err := config.LoadSearchFile(flags.configPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	format := sf.Output.Format
	if cmd.Flags().Changed("format") {
		format = flags.format
	}
	sink, err := render.New(format, sf.Output.ShowSegments || flags.showSegments)
	if err != nil {
		return err
	}

	level := "warn"
	if flags.verbose {
		level = "debug"
	}
	log := logger.NewWithOutput(logger.Config{
		Level:       level,
		Format:      "console",
		ServiceName: logger.DefaultServiceName,
		NoColor:     true,
	}, cmd.ErrOrStderr())

	pipeline, err := app.New(ctx, cfg, log, sf.APIKey)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	resp, err := pipeline.UseCase.Search(ctx, sf.Request, usecase.DefaultSearchOptions())
	if err != nil {
		return err
	}
	if resp.Summary.Canceled {
		fmt.Fprintln(cmd.ErrOrStderr(), "Search interrupted; showing partial results.")
	}

	return sink.Render(cmd.OutOrStdout(), resp)
}

func newProgramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the loyalty programs that can be searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writePrograms(cmd.OutOrStdout(), catalog.Default())
		},
	}
}

func newCardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List credit cards and their airline transfer partners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeCards(cmd.OutOrStdout(), catalog.Default())
		},
	}
}

func writePrograms(w io.Writer, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, p := range c.All() {
		fmt.Fprintf(tw, "%s\t%s\n", p.ID, p.Name)
	}
	return tw.Flush()
}

func writeCards(w io.Writer, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPARTNERS")
	for _, card := range c.Cards() {
		partners := make([]string, len(card.Partners))
		for i, id := range card.Partners {
			partners[i] = fmt.Sprintf("%s (%s)", c.ProgramName(id), id)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", card.ID, card.Name, strings.Join(partners, ", "))
	}
	return tw.Flush()
}
