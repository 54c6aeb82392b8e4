// Package gitstatus reports generated outputs that differ from the committed
// state of the repository.
package gitstatus

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// State describes how a path differs from HEAD.
type State string

const (
	StateModified  State = "modified"
	StateAdded     State = "added"
	StateDeleted   State = "deleted"
	StateRenamed   State = "renamed"
	StateUntracked State = "untracked"
)

// Change is one differing path, relative to the repository root.
type Change struct {
	Path  string `json:"path"`
	State State  `json:"state"`
}

// Changes lists paths under dir whose worktree or index state differs from
// HEAD. dir may be absolute or relative to the working directory; the
// repository is found by walking up from it.
func Changes(dir string) ([]Change, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "resolve path").
			WithPath(dir).Build()
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ferrors.GitError("not a git repository: " + dir).
				WithCause(err).FixInputs().Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "open repository").Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "open worktree").Build()
	}
	status, err := wt.Status()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "worktree status").Build()
	}

	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	prefix, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "path outside repository").
			WithPath(dir).Build()
	}
	prefix = filepath.ToSlash(prefix)

	var out []Change
	for p, fs := range status {
		if !under(p, prefix) {
			continue
		}
		state, ok := stateOf(fs)
		if !ok {
			continue
		}
		out = append(out, Change{Path: p, State: state})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func under(p, prefix string) bool {
	if prefix == "." || prefix == "" {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// stateOf folds the staging and worktree codes into one state. Worktree
// changes take precedence over staged ones.
func stateOf(fs *git.FileStatus) (State, bool) {
	if fs.Worktree == git.Untracked || fs.Staging == git.Untracked {
		return StateUntracked, true
	}
	for _, code := range []git.StatusCode{fs.Worktree, fs.Staging} {
		switch code {
		case git.Modified, git.UpdatedButUnmerged:
			return StateModified, true
		case git.Deleted:
			return StateDeleted, true
		case git.Added, git.Copied:
			return StateAdded, true
		case git.Renamed:
			return StateRenamed, true
		}
	}
	return "", false
}
