package errors

import "fmt"

// Messages shared by several commands.

// ConfigInvalid creates an error for a config that failed to load or validate.
func ConfigInvalid(err error) *CLIError {
	return Wrap(err, Configuration,
		"invalid configuration",
		"Inspect the effective values with: whatsnew config show",
		"List valid keys and values with: whatsnew config keys",
		"Override a single value with an environment variable, e.g. WHATSNEW_SOURCE=embedded",
	)
}

// ChangelogInvalid creates an error for a catalogue file that does not parse or validate.
func ChangelogInvalid(path string, err error) *CLIError {
	return Wrap(err, Content,
		fmt.Sprintf("cannot load changelog %s", path),
		"Every entry needs an id, a version and a title",
		"type must be one of: feature, fix, improvement",
		"Dates use the YYYY-MM-DD format",
	)
}

// UnknownConfigKey creates an error for a config key that isn't recognised.
func UnknownConfigKey(key string) *CLIError {
	return ArgumentError(
		fmt.Sprintf("unknown configuration key: %s", key),
		"whatsnew config set <key> <value>",
		"List valid keys with: whatsnew config keys",
	)
}

// InvalidGrouping creates an error for an unsupported --by value.
func InvalidGrouping(by string) *CLIError {
	return ArgumentError(
		fmt.Sprintf("invalid grouping: %s", by),
		"whatsnew list --by version|date",
		"Group by version (default) or by release date",
	)
}

// InvalidFormat creates an error for an unsupported --format value.
func InvalidFormat(format string) *CLIError {
	return ArgumentError(
		fmt.Sprintf("invalid output format: %s", format),
		"whatsnew list --format text|markdown",
	)
}
