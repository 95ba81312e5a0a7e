package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is read from the home directory and then the repository root
const SettingsFileName = ".stacky.yml"

// Settings holds user preferences
type Settings struct {
	UI  UISettings  `yaml:"ui"`
	Git GitSettings `yaml:"git"`
}

// UISettings controls prompts and display
type UISettings struct {
	SkipConfirm        bool `yaml:"skip_confirm"`
	ChangeToMain       bool `yaml:"change_to_main"`
	ChangeToAdopted    bool `yaml:"change_to_adopted"`
	CompactPRDisplay   bool `yaml:"compact_pr_display"`
	EnableStackComment bool `yaml:"enable_stack_comment"`
}

// GitSettings controls how branches are synchronized and pushed
type GitSettings struct {
	UseMerge     bool   `yaml:"use_merge"`
	UseForcePush bool   `yaml:"use_force_push"`
	Remote       string `yaml:"remote"`
}

// DefaultSettings returns the settings used when no file overrides them
func DefaultSettings() Settings {
	return Settings{
		UI: UISettings{
			EnableStackComment: true,
		},
		Git: GitSettings{
			UseForcePush: true,
			Remote:       "origin",
		},
	}
}

// SettingsPaths returns the files consulted, lowest precedence first.
// STACKY_CONFIG replaces the repository file.
func SettingsPaths(repoRoot string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, SettingsFileName))
	}
	if custom := os.Getenv("STACKY_CONFIG"); custom != "" {
		paths = append(paths, custom)
	} else if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, SettingsFileName))
	}
	return paths
}

// LoadSettings reads every settings file in order; later files override
// only the keys they set.
func LoadSettings(repoRoot string) (Settings, error) {
	settings := DefaultSettings()
	for _, path := range SettingsPaths(repoRoot) {
		if err := mergeSettingsFile(&settings, path); err != nil {
			return Settings{}, err
		}
	}
	if settings.Git.Remote == "" {
		settings.Git.Remote = "origin"
	}
	return settings, nil
}

func mergeSettingsFile(settings *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// WriteSettings writes settings as YAML
func WriteSettings(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
