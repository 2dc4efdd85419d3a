package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# changelogtxt configuration
# Environment variables override these values, e.g. CHANGELOGTXT_OUTPUT=json

file_name: CHANGELOG.txt              # File searched for when a directory is given
unreleased_label: Unreleased          # Header shown for the unreleased section
strict_continuation: false            # Reject text lines that do not continue a change

# Output settings
plain: false                          # Disable colored output
verbose: false                        # Debug logging to stderr
output: text                          # text | json | yaml
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"file_name":        "CHANGELOG.txt",
		"unreleased_label": "Unreleased",
		// strict_continuation: off by default so a non-bullet line in an empty
		// section starts a new change.
		"strict_continuation": false,
		"plain":               false,
		"verbose":             false,
		"output":              OutputText,
	}
}
