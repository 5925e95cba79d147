// Package cli defines the command tree. All collaborators arrive
// through Dependencies so commands stay testable.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ErrVersionRequested indicates the user requested the CLI version and
// no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Summary is what a finished review run reports back to the user.
type Summary struct {
	Provider       string
	Model          string
	FilesReviewed  int
	FilesSkipped   int
	CommentsPosted int
	Duplicates     int
	OffDiff        int
	ReportPath     string
	PostSkipped    bool
}

// PullRequestReviewer runs a review against a GitHub pull request.
type PullRequestReviewer interface {
	ReviewPullRequest(ctx context.Context, owner, repo string, number int, dryRun bool) (Summary, error)
}

// LocalReviewer runs a review against a local branch diff.
type LocalReviewer interface {
	ReviewLocal(ctx context.Context, baseRef, targetRef string, includeWorkTree bool) (Summary, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	PullRequests PullRequestReviewer
	Local        LocalReviewer
	Args         Arguments
	DefaultOwner string
	DefaultRepo  string
	Version      string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "prr",
		Short: "Model-assisted pull request review CLI",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Run a code review",
	}
	reviewCmd.AddCommand(prCommand(deps.PullRequests, deps.DefaultOwner, deps.DefaultRepo))
	reviewCmd.AddCommand(localCommand(deps.Local))
	root.AddCommand(reviewCmd)

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func prCommand(reviewer PullRequestReviewer, defaultOwner, defaultRepo string) *cobra.Command {
	var owner string
	var repo string
	var number int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Review a GitHub pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reviewer == nil {
				return errors.New("pull request reviewing is not configured")
			}
			if owner == "" {
				owner = defaultOwner
			}
			if repo == "" {
				repo = defaultRepo
			}
			if owner == "" || repo == "" {
				return errors.New("--owner and --repo are required (or set github.owner/github.repo in config)")
			}
			if number <= 0 {
				return errors.New("--number is required")
			}

			summary, err := reviewer.ReviewPullRequest(cmd.Context(), owner, repo, number, dryRun)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Repository owner")
	cmd.Flags().StringVar(&repo, "repo", "", "Repository name")
	cmd.Flags().IntVar(&number, "number", 0, "Pull request number")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Write a report instead of posting the review")

	return cmd
}

func localCommand(reviewer LocalReviewer) *cobra.Command {
	var baseRef string
	var targetRef string
	var uncommitted bool

	cmd := &cobra.Command{
		Use:   "local",
		Short: "Review a local branch diff",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reviewer == nil {
				return errors.New("local reviewing is not configured")
			}
			if baseRef == "" {
				return errors.New("--base is required")
			}

			summary, err := reviewer.ReviewLocal(cmd.Context(), baseRef, targetRef, uncommitted)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseRef, "base", "", "Base ref to diff against")
	cmd.Flags().StringVar(&targetRef, "target", "", "Target ref (defaults to the current branch)")
	cmd.Flags().BoolVar(&uncommitted, "uncommitted", false, "Include uncommitted working tree changes")

	return cmd
}

func printSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Reviewed %d file(s) with %s (%s)\n", s.FilesReviewed, s.Provider, s.Model)
	if s.FilesSkipped > 0 {
		fmt.Fprintf(w, "Skipped %d file(s)\n", s.FilesSkipped)
	}
	if s.PostSkipped {
		fmt.Fprintln(w, "Nothing to post")
	} else if s.ReportPath != "" {
		fmt.Fprintf(w, "Wrote %d comment(s) to %s\n", s.CommentsPosted, s.ReportPath)
	} else {
		fmt.Fprintf(w, "Posted %d comment(s)\n", s.CommentsPosted)
	}
	if s.Duplicates > 0 {
		fmt.Fprintf(w, "Suppressed %d duplicate(s)\n", s.Duplicates)
	}
	if s.OffDiff > 0 {
		fmt.Fprintf(w, "Dropped %d off-diff comment(s)\n", s.OffDiff)
	}
}
