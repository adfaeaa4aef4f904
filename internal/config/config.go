// Package config reads .descriptorbuild.yml, the project-level defaults
// file a workspace root may carry: ambient properties, forced profile
// activation, and validation settings a CLI invocation inherits unless
// overridden by an explicit flag.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the decoded shape of .descriptorbuild.yml.
type FileConfig struct {
	WorkspaceRoot    string            `yaml:"workspaceRoot"`
	RepositoryRoot   string            `yaml:"repositoryRoot"`
	Properties       map[string]string `yaml:"properties"`
	ActiveProfiles   []string          `yaml:"activeProfiles"`
	InactiveProfiles []string          `yaml:"inactiveProfiles"`
	ValidationLevel  string            `yaml:"validationLevel"`
	ProcessPlugins   bool              `yaml:"processPlugins"`
}

// Load reads path and decodes it as a FileConfig. A missing file is not an
// error: it returns a zero-value FileConfig, since project-level defaults
// are optional and a CLI invocation should run fine without one.
func Load(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}
