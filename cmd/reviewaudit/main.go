// Package main provides the entry point for the reviewaudit command.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/listenupapp/reviewaudit/internal/config"
	"github.com/listenupapp/reviewaudit/internal/di"
	"github.com/listenupapp/reviewaudit/internal/errors"
	"github.com/listenupapp/reviewaudit/internal/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "reviewaudit:", describe(err))
		os.Exit(errors.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "reviewaudit",
		Short: "Locate a book by its hidden identifier and explain its suspicious reviews",
		Long: `reviewaudit derives a hash identifier from a subject string, finds the
book whose reviews carry it, labels the book's five-star reviews with a
word-count heuristic, fits a TF-IDF logistic regression and ranks the
words that most lower the suspicion score. Three flags are written to the
output file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.BooksPath, "books", "", "Path to the books CSV (env BOOKS_PATH, default books.csv)")
	f.StringVar(&flags.ReviewsPath, "reviews", "", "Path to the reviews CSV (env REVIEWS_PATH, default reviews.csv)")
	f.StringVarP(&flags.FlagsPath, "output", "o", "", "Path of the flags file (env FLAGS_PATH, default flags.txt)")
	f.StringVar(&flags.Subject, "subject", "", "Subject identifier to hash (env SUBJECT_ID, default STU032)")
	f.StringVar(&flags.Env, "env", "", "Environment (development, staging, production)")
	f.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&flags.EnvFile, "env-file", config.DefaultEnvFile, "Path to .env file")
	f.StringVarP(&flags.ConfigFile, "config", "c", "", "Path to a YAML config file (env REVIEWAUDIT_CONFIG)")

	return cmd
}

func run(ctx context.Context, flags config.Flags, out io.Writer) error {
	injector := di.NewContainer(flags)
	defer func() { _ = injector.Shutdown() }()

	p, log, err := di.Bootstrap(injector)
	if err != nil {
		return err
	}

	res, err := p.Run(ctx)
	if err != nil {
		log.WithError(err).Error("Audit failed")
		return err
	}

	printSummary(out, res)
	return nil
}

func printSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "Book:       %s (%s)\n", res.Target.Key, res.Target.TitlePrefix)
	fmt.Fprintf(w, "Hash ID:    %s\n", res.Identity.HashID)
	fmt.Fprintf(w, "Labels:     %d suspicious, %d genuine\n", res.Labels.Suspicious, res.Labels.Genuine)
	fmt.Fprintf(w, "Top words:  %s\n", strings.Join(res.TopWords, ", "))
	fmt.Fprintf(w, "FLAG1 = %s\nFLAG2 = %s\nFLAG3 = %s\n", res.Flags.Flag1, res.Flags.Flag2, res.Flags.Flag3)
	fmt.Fprintf(w, "Written to %s\n", res.FlagsPath)
}

// describe renders err as one line naming the failed precondition.
func describe(err error) string {
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		return fmt.Sprintf("%s: %s", domainErr.Code, err.Error())
	}
	if errors.Is(err, context.Canceled) {
		return "interrupted"
	}
	return err.Error()
}
