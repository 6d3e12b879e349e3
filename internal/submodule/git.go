package submodule

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// GitRegistrar registers submodules with the git CLI.
type GitRegistrar struct {
	// Git is the git binary; defaults to "git" on PATH.
	Git string
}

func (g *GitRegistrar) bin() string {
	if g.Git != "" {
		return g.Git
	}
	return "git"
}

// Register runs `git submodule add --name <name> <url> <path>` in the repo,
// initializing the repository first when it has no .git yet.
func (g *GitRegistrar) Register(ctx context.Context, req Request) (*Output, error) {
	if _, err := exec.LookPath(g.bin()); err != nil {
		return nil, fmt.Errorf("git is not available: %w", err)
	}

	if _, err := os.Stat(filepath.Join(req.RepoPath, ".git")); os.IsNotExist(err) {
		out, err := run(ctx, req.RepoPath, g.bin(), "init")
		if err != nil {
			return out, err
		}
		if out.Failed() {
			return out, nil
		}
	}

	return run(ctx, req.RepoPath, g.bin(), gitArgs(req)...)
}

func gitArgs(req Request) []string {
	return []string{"submodule", "add", "--name", req.Name, req.URL, filepath.ToSlash(req.Path)}
}
