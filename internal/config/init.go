package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigTemplate = `# buildforge configuration
builder:
  # External build tool invoked once per resolved target.
  command: make
  clean_goal: clean
  # default_configuration: Debug
  # env:
  #   - CC=clang

# notifications:
#   enabled: true
#   nats_url: nats://localhost:4222
#   subject: buildforge.runs
`

// Init writes a commented default configuration file at the root path.
// Refuses to overwrite an existing file unless force is set.
func Init(rootPath string, force bool) error {
	cfgPath := filepath.Join(rootPath, FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", cfgPath)
	}
	if err := os.WriteFile(cfgPath, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
