// Package config manages user-level settings stored at ~/.projectforge/config.yaml.
// It loads the file through viper (with FORGE_* environment overrides), exposes
// the typed Settings the pipeline needs, and bootstraps a default file on
// first run.
package config
