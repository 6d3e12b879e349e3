package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forge-labs/forge/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	logsDir      = "logs"
	templatesDir = "templates"
)

//go:embed default_config.yaml
var defaultConfig []byte

// Keys recognised in config.yaml. Each one can also be set through the
// environment, e.g. FORGE_PROJECT_DIR.
const (
	KeyProjectDir           = "project_dir"
	KeyVenvDir              = "venv_dir"
	KeyRouterExe            = "router_exe"
	KeyTemplatesDir         = "templates_dir"
	KeyTemplatesRepoURL     = "templates_repo_url"
	KeyScriptsDir           = "scripts_dir"
	KeySubmoduleScript      = "submodule_script"
	KeySubmoduleInterpreter = "submodule_interpreter"
	KeyLanguagesFile        = "languages_file"
	KeyLogLevel             = "log_level"
)

var keys = []string{
	KeyProjectDir, KeyVenvDir, KeyRouterExe, KeyTemplatesDir, KeyTemplatesRepoURL,
	KeyScriptsDir, KeySubmoduleScript, KeySubmoduleInterpreter, KeyLanguagesFile, KeyLogLevel,
}

// Settings is the typed view of config.yaml.
type Settings struct {
	ProjectDir           string `mapstructure:"project_dir"`
	VenvDir              string `mapstructure:"venv_dir"`
	RouterExe            string `mapstructure:"router_exe"`
	TemplatesDir         string `mapstructure:"templates_dir"`
	TemplatesRepoURL     string `mapstructure:"templates_repo_url"`
	ScriptsDir           string `mapstructure:"scripts_dir"`
	SubmoduleScript      string `mapstructure:"submodule_script"`
	SubmoduleInterpreter string `mapstructure:"submodule_interpreter"`
	LanguagesFile        string `mapstructure:"languages_file"`
	LogLevel             string `mapstructure:"log_level"`
}

var v = viper.New()

// Dir returns the path to the config directory. FORGE_HOME wins over
// ~/.projectforge.
func Dir() string {
	if d := os.Getenv(branding.EnvVar("HOME")); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.projectforge/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// LogDir returns the directory run logs are written to.
func LogDir() string {
	return filepath.Join(Dir(), logsDir)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Exists reports whether the config file is present.
func Exists() bool {
	info, err := os.Stat(FilePath())
	return err == nil && !info.IsDir()
}

// Bootstrap writes the default config file when none exists yet. It returns
// true when a new file was created, in which case the caller should stop and
// let the user fill it in.
func Bootstrap() (bool, error) {
	if Exists() {
		return false, nil
	}
	if err := EnsureDir(); err != nil {
		return false, err
	}
	path := FilePath()
	if err := os.WriteFile(path, defaultConfig, 0644); err != nil {
		return false, fmt.Errorf("writing default config %s: %w", path, err)
	}
	return true, nil
}

// Load (re)initializes viper from the config file and environment.
func Load() {
	v = viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	for _, k := range keys {
		v.SetDefault(k, "")
	}
	v.SetDefault(KeyTemplatesDir, filepath.Join(Dir(), templatesDir))
	v.SetDefault(KeyTemplatesRepoURL, branding.TemplatesRepoURL())
	v.SetDefault(KeyLogLevel, "debug")

	// Ignore error if config file doesn't exist yet.
	_ = v.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	v.Set(key, value)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// IsKnownKey reports whether key is one of the recognised settings.
func IsKnownKey(key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// Keys returns the recognised setting names in file order.
func Keys() []string {
	return append([]string(nil), keys...)
}

// Read returns the current settings. Load must have been called first.
// Keys left empty in the file fall back to their defaults.
func Read() (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if s.TemplatesDir == "" {
		s.TemplatesDir = filepath.Join(Dir(), templatesDir)
	}
	if s.TemplatesRepoURL == "" {
		s.TemplatesRepoURL = branding.TemplatesRepoURL()
	}
	if s.LogLevel == "" {
		s.LogLevel = "debug"
	}
	return &s, nil
}

// Validate checks the settings every run needs.
func (s *Settings) Validate() error {
	if s.ProjectDir == "" {
		return fmt.Errorf("%s is not set; edit %s", KeyProjectDir, FilePath())
	}
	info, err := os.Stat(s.ProjectDir)
	if err != nil {
		return fmt.Errorf("%s %s: %w", KeyProjectDir, s.ProjectDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %s is not a directory", KeyProjectDir, s.ProjectDir)
	}
	if s.SubmoduleInterpreter != "" && s.SubmoduleScript == "" {
		return fmt.Errorf("%s is set but %s is empty", KeySubmoduleInterpreter, KeySubmoduleScript)
	}
	return nil
}
