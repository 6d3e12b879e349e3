package steps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/prompt"
	"github.com/forge-labs/forge/internal/template"
)

// Placeholders substituted in framework files.
const (
	PlaceholderSanitizedName  = "${SANITIZED_NAME}"
	PlaceholderRootFolderName = "${ROOT_FOLDER_NAME}"
	PlaceholderGitURL         = "${GIT_URL}"
)

// FrameworkChooser asks which of a template's frameworks to include.
type FrameworkChooser interface {
	ChooseFrameworks(ctx context.Context, t template.Template, options []template.Framework) ([]template.Framework, error)
}

// PromptChooser asks through a prompt.Driver.
type PromptChooser struct {
	Driver prompt.Driver
}

func (p PromptChooser) ChooseFrameworks(ctx context.Context, t template.Template, options []template.Framework) ([]template.Framework, error) {
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = o.Name
	}
	picks, err := p.Driver.MultiSelect(ctx, prompt.SelectConfig{
		Message: fmt.Sprintf("Frameworks to include from %s:", t.Name),
		Options: names,
	})
	if err != nil {
		return nil, err
	}
	chosen := make([]template.Framework, 0, len(picks))
	for _, i := range picks {
		chosen = append(chosen, options[i])
	}
	return chosen, nil
}

// InitializeFrameworks lets the user pick frameworks per template, copies
// each chosen file into the repo root with placeholders filled in, and
// queues the frameworks' submodules for registration.
type InitializeFrameworks struct {
	log     *logging.Logger
	chooser FrameworkChooser
}

func (s *InitializeFrameworks) Name() string { return "InitializeFrameworks" }

func (s *InitializeFrameworks) Flow(ctx context.Context, c *pipeline.Context) (*pipeline.Context, error) {
	s.log.Trace("Flowing pipe for framework add.")

	replacer := strings.NewReplacer(
		PlaceholderSanitizedName, c.ProjectRootNameSanitized,
		PlaceholderRootFolderName, c.ProjectRootName,
		PlaceholderGitURL, c.GitURL,
	)

	for _, t := range c.IncludedTemplates {
		options, err := t.Frameworks()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(options) == 0 {
			continue
		}
		if s.chooser == nil {
			return nil, fmt.Errorf("template %s offers frameworks but no chooser is configured", t.Name)
		}

		chosen, err := s.chooser.ChooseFrameworks(ctx, t, options)
		if err != nil {
			return nil, err
		}

		for _, fw := range chosen {
			if err := copyFramework(t, fw, c.RepoPath, replacer); err != nil {
				return nil, err
			}
			if err := c.AddExtraSubmodules(fw.Submodules...); err != nil {
				return nil, fmt.Errorf("framework %s: %w", fw.Name, err)
			}
			s.log.Debug("Framework added", "template", t.Name, "framework", fw.Name)
		}
	}

	s.log.Trace("Done flowing pipe for framework add.")
	return c, nil
}

func copyFramework(t template.Template, fw template.Framework, repo string, r *strings.Replacer) error {
	src, err := fw.Source(t)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("framework %s: %w", fw.Name, err)
	}
	dst := filepath.Join(repo, filepath.Base(src))
	if err := os.WriteFile(dst, []byte(r.Replace(string(data))), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
