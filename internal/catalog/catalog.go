// Package catalog keeps the local template library in sync with its git
// repository: cloning on first use, pulling on update, and tracking when it
// was last refreshed.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/forge-labs/forge/internal/branding"
	"github.com/forge-labs/forge/internal/config"
	"github.com/forge-labs/forge/internal/template"
)

const (
	// freshnessFile is the name of the timestamp marker file.
	freshnessFile = ".templates-updated"

	// DefaultMaxAge is the default staleness threshold (7 days).
	DefaultMaxAge = 7 * 24 * time.Hour

	// tmpSuffix is appended to the target dir during atomic clone.
	tmpSuffix = ".tmp"
)

// ErrNoRepoURL is returned when no template repository is configured.
var ErrNoRepoURL = errors.New("no templates repository configured (set templates_repo_url)")

// Catalog is a template library on disk.
type Catalog struct {
	Dir     string
	RepoURL string
	Git     string // git binary, "git" when empty
}

// New returns the catalog described by the loaded config.
func New() *Catalog {
	dir := config.Get(config.KeyTemplatesDir)
	if dir == "" {
		dir = filepath.Join(config.Dir(), "templates")
	}
	return &Catalog{Dir: dir, RepoURL: RepoURL()}
}

// RepoURL returns the template repository URL from config
// (FORGE_TEMPLATES_REPO_URL included) or branding.
func RepoURL() string {
	if v := config.Get(config.KeyTemplatesRepoURL); v != "" {
		return v
	}
	return branding.TemplatesRepoURL()
}

func (c *Catalog) git() string {
	if c.Git != "" {
		return c.Git
	}
	return "git"
}

// Clone performs a shallow clone into Dir.
//
// The clone is atomic: it writes to a .tmp directory first, then renames
// on success. On failure the .tmp directory is cleaned up.
func (c *Catalog) Clone(ctx context.Context) error {
	if c.RepoURL == "" {
		return ErrNoRepoURL
	}
	if err := c.ensureGit(); err != nil {
		return err
	}

	tmpDir := c.Dir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if err := c.runGit(ctx, "", "clone", "--depth=1", c.RepoURL, tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning templates: %w", err)
	}

	if err := os.RemoveAll(c.Dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing templates dir: %w", err)
	}
	if err := os.Rename(tmpDir, c.Dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing templates clone: %w", err)
	}

	return c.WriteFreshnessMarker(time.Now())
}

// Update pulls the latest changes, cloning first if Dir is not a git
// checkout yet.
func (c *Catalog) Update(ctx context.Context) error {
	if err := c.ensureGit(); err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(c.Dir, ".git")); os.IsNotExist(err) {
		return c.Clone(ctx)
	}

	if err := c.runGit(ctx, c.Dir, "pull", "--rebase"); err != nil {
		return fmt.Errorf("pulling template updates: %w", err)
	}
	return c.WriteFreshnessMarker(time.Now())
}

// Templates lists the template folders present in Dir.
func (c *Catalog) Templates() ([]template.Template, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading templates dir %s: %w", c.Dir, err)
	}
	var out []template.Template
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, template.New(c.Dir, e.Name()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// WriteFreshnessMarker records t as the last refresh time.
func (c *Catalog) WriteFreshnessMarker(t time.Time) error {
	markerPath := filepath.Join(c.Dir, freshnessFile)
	ts := strconv.FormatInt(t.Unix(), 10)
	if err := os.WriteFile(markerPath, []byte(ts), 0644); err != nil {
		return fmt.Errorf("writing freshness marker: %w", err)
	}
	return nil
}

// LastUpdated returns the recorded refresh time, or zero time if the marker
// is missing or unreadable.
func (c *Catalog) LastUpdated() time.Time {
	data, err := os.ReadFile(filepath.Join(c.Dir, freshnessFile))
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// IsStale returns true if the library was last updated more than maxAge ago
// or has never been refreshed.
func (c *Catalog) IsStale(maxAge time.Duration) bool {
	lastUpdated := c.LastUpdated()
	if lastUpdated.IsZero() {
		return true
	}
	return time.Since(lastUpdated) > maxAge
}

func (c *Catalog) runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, c.git(), args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ensureGit checks that git is available on PATH.
func (c *Catalog) ensureGit() error {
	if _, err := exec.LookPath(c.git()); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
