// Package git produces file changes from a local repository so reviews
// can run without a pull request.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	formatdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/mhenry/prreview/internal/domain"
)

// Engine computes diffs from a local repository using go-git, shelling
// out to git only for working tree state which go-git cannot diff
// directly.
type Engine struct {
	repoDir string
}

// NewEngine creates an engine rooted at the given repository directory.
// The directory may be anywhere inside the work tree.
func NewEngine(repoDir string) *Engine {
	return &Engine{repoDir: repoDir}
}

// Changes returns the file changes between baseRef and targetRef. When
// includeWorkTree is set, uncommitted changes against baseRef are
// returned instead of the committed range.
func (e *Engine) Changes(ctx context.Context, baseRef, targetRef string, includeWorkTree bool) ([]domain.FileChange, error) {
	repo, err := gogit.PlainOpenWithOptions(e.repoDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	if includeWorkTree {
		return e.workTreeChanges(ctx, baseRef)
	}

	baseCommit, err := resolveCommit(repo, baseRef)
	if err != nil {
		return nil, fmt.Errorf("resolve base ref: %w", err)
	}
	targetCommit, err := resolveCommit(repo, targetRef)
	if err != nil {
		return nil, fmt.Errorf("resolve target ref: %w", err)
	}

	patch, err := baseCommit.Patch(targetCommit)
	if err != nil {
		return nil, fmt.Errorf("compute patch: %w", err)
	}

	changes := make([]domain.FileChange, 0, len(patch.FilePatches()))
	for _, fp := range patch.FilePatches() {
		path, oldPath, status := pathAndStatus(fp)
		patchText, err := encodeFilePatch(fp)
		if err != nil {
			return nil, fmt.Errorf("encode patch: %w", err)
		}
		if isBinaryPatch(patchText) {
			patchText = ""
		}
		changes = append(changes, domain.FileChange{
			Path:    path,
			OldPath: oldPath,
			Status:  status,
			Patch:   patchText,
		})
	}

	return changes, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (e *Engine) CurrentBranch(ctx context.Context) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(e.repoDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if name := head.Name(); name.IsBranch() {
		return name.Short(), nil
	}
	return "", fmt.Errorf("detached HEAD")
}

func resolveCommit(repo *gogit.Repository, ref string) (*object.Commit, error) {
	candidates := []string{
		ref,
		fmt.Sprintf("refs/heads/%s", ref),
		fmt.Sprintf("refs/remotes/origin/%s", ref),
	}

	var lastErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		return repo.CommitObject(*hash)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to resolve ref %s", ref)
}

// pathAndStatus classifies a file patch. For renames the returned path
// is the new path and oldPath the previous one.
func pathAndStatus(fp formatdiff.FilePatch) (path, oldPath, status string) {
	from, to := fp.Files()
	switch {
	case from == nil && to != nil:
		return to.Path(), "", domain.FileStatusAdded
	case from != nil && to == nil:
		return from.Path(), "", domain.FileStatusRemoved
	case from != nil && to != nil:
		if from.Path() != to.Path() {
			return to.Path(), from.Path(), domain.FileStatusRenamed
		}
		return to.Path(), "", domain.FileStatusModified
	default:
		return "", "", domain.FileStatusModified
	}
}

// encodeFilePatch renders one file's patch as unified diff text.
func encodeFilePatch(fp formatdiff.FilePatch) (string, error) {
	var buf bytes.Buffer
	encoder := formatdiff.NewUnifiedEncoder(&buf, formatdiff.DefaultContextLines)
	if err := encoder.Encode(singlePatch{fp: fp}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// singlePatch wraps one FilePatch so the unified encoder can render it
// in isolation.
type singlePatch struct {
	fp formatdiff.FilePatch
}

func (s singlePatch) FilePatches() []formatdiff.FilePatch {
	return []formatdiff.FilePatch{s.fp}
}

func (s singlePatch) Message() string {
	return ""
}

func isBinaryPatch(patchText string) bool {
	return strings.Contains(patchText, "Binary files") ||
		strings.Contains(patchText, "GIT binary patch")
}

func (e *Engine) workTreeChanges(ctx context.Context, baseRef string) ([]domain.FileChange, error) {
	statusOut, err := runGit(ctx, e.repoDir, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}

	trimmed := strings.TrimRight(statusOut, "\r\n")
	if trimmed == "" {
		return []domain.FileChange{}, nil
	}

	lines := strings.Split(trimmed, "\n")
	changes := make([]domain.FileChange, 0, len(lines))
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}
		path, oldPath := splitStatusPath(line)
		patchOut, err := runGit(ctx, e.repoDir, "diff", baseRef, "--", path)
		if err != nil {
			return nil, fmt.Errorf("git diff %s: %w", path, err)
		}
		if isBinaryPatch(patchOut) {
			patchOut = ""
		}
		changes = append(changes, domain.FileChange{
			Path:    path,
			OldPath: oldPath,
			Status:  statusFromPorcelain(line),
			Patch:   patchOut,
		})
	}
	return changes, nil
}

func runGit(ctx context.Context, repoDir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoDir}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git %v: %w", args, ctx.Err())
		}
		if stderr.Len() > 0 {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("git %v: %w", args, err)
	}
	return stdout.String(), nil
}

// statusFromPorcelain maps a porcelain v1 status line to a file status.
// The work tree column wins over the index column when both are set.
func statusFromPorcelain(line string) string {
	code := rune(line[1])
	if code == ' ' {
		code = rune(line[0])
	}
	switch code {
	case 'A', '?':
		return domain.FileStatusAdded
	case 'D':
		return domain.FileStatusRemoved
	case 'R':
		return domain.FileStatusRenamed
	default:
		return domain.FileStatusModified
	}
}

// splitStatusPath extracts the path, and old path for renames, from a
// porcelain v1 status line ("R  old_path -> new_path").
func splitStatusPath(line string) (path, oldPath string) {
	pathPart := strings.TrimSpace(line[3:])
	if before, after, found := strings.Cut(pathPart, " -> "); found {
		return strings.TrimSpace(after), strings.TrimSpace(before)
	}
	return pathPart, ""
}
