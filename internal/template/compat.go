package template

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersion reports whether cliVersion satisfies the manifest's requires
// constraint. Development builds ("dev", "") and manifests without a
// constraint always pass.
func (m *Manifest) CheckVersion(cliVersion string) error {
	if m == nil || m.Requires == "" {
		return nil
	}
	if cliVersion == "" || cliVersion == "dev" {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("parsing requires %q: %w", m.Requires, err)
	}
	v, err := parseSemver(cliVersion)
	if err != nil {
		return fmt.Errorf("parsing CLI version %q: %w", cliVersion, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("template %q requires CLI %s, running %s", m.Name, m.Requires, cliVersion)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
