package config

import "github.com/ariel-frischer/whatsnew/internal/changelog"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# whatsnew configuration
# See 'whatsnew config keys' for all options

# Changelog source
source: embedded                      # embedded | file | remote
changelog_path: ""                    # Catalogue file when source is file
remote_url: ""                        # Served catalogue when source is remote
remote_timeout: 5s                    # Fetch timeout before falling back to embedded

# Read state
state_backend: file                   # file | sqlite | memory
state_dir: ~/.whatsnew/state          # Directory for state files
profile: default                      # Installation profile the read state is keyed by

# Output
log_level: warn                       # debug | info | warn | error
log_format: text                      # text | json
plain: false                          # Plain output without colors or glyphs
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"source":         SourceEmbedded,
		"changelog_path": "",
		"remote_url":     "",
		"remote_timeout": changelog.DefaultRemoteTimeout.String(),
		// state_backend: file keeps one small YAML per profile; sqlite keeps
		// every profile in one database.
		"state_backend": BackendFile,
		"state_dir":     "~/.whatsnew/state",
		"profile":       "default",
		"log_level":     "warn",
		"log_format":    "text",
		"plain":         false,
	}
}
