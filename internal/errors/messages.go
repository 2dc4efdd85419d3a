package errors

import "fmt"

// Common error messages for the changelogtxt CLI.
// These templates ensure consistent, actionable error messages.

// MissingSubcommand creates an error for running changelogtxt without a command.
func MissingSubcommand() *CLIError {
	return NewArgumentErrorWithUsage(
		"a command is required",
		"changelogtxt <check-tag|check-format|compare|update|show> [flags]",
		"Run 'changelogtxt --help' to list the available commands",
	)
}

// ChangelogNotFound creates an error for a missing changelog file.
func ChangelogNotFound(err error) *CLIError {
	return &CLIError{
		Category: NotFound,
		Message:  err.Error(),
		Remediation: []string{
			"Pass the changelog location with --file",
			"Or create one: changelogtxt update --message \"Initial release\" --tag 0.1.0",
		},
		Err: err,
	}
}

// InvalidFormat creates an error for changelog text that cannot be parsed.
func InvalidFormat(err error) *CLIError {
	return &CLIError{
		Category: Format,
		Message:  err.Error(),
		Remediation: []string{
			"Start every change with '- ' followed by its text",
			"Put each version header on its own line, e.g. v1.2.3",
			"Wrapped lines continue the change above them",
		},
		Err: err,
	}
}

// VersionExists creates an error for an update that would modify a released version.
func VersionExists(err error, version string) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  err.Error(),
		Remediation: []string{
			fmt.Sprintf("Re-run with --force to add the message to %s", version),
			"Or leave --tag empty to record the change as unreleased",
		},
		Err: err,
	}
}

// InvalidTag creates an error for a tag that is missing from the changelog or is not a
// version at all.
func InvalidTag(err error) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  err.Error(),
		Remediation: []string{
			"Versions look like 1.2.3, v1.2.3, 1.2 or 1.0.0rc1",
			"List the versions in the changelog with: changelogtxt show",
		},
		Err: err,
	}
}

// NoTagAtHead creates an error when check-tag has no tag to check.
func NoTagAtHead() *CLIError {
	return NewArgumentErrorWithUsage(
		"no tag given and no git tag points at HEAD",
		"changelogtxt check-tag --tag <version>",
		"Pass the tag explicitly with --tag",
		"Or tag the release commit first: git tag v1.2.3",
	)
}

// TagNotInRepository creates an error when --git is set and the tag does not exist.
func TagNotInRepository(tag string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("tag %s exists in the changelog but not in the git repository", tag),
		fmt.Sprintf("Create the tag: git tag %s", tag),
		"Or drop --git to check the changelog only",
	)
}

// NoDifferences creates an error for a comparison of identical changelogs.
func NoDifferences(err error) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  err.Error(),
		Remediation: []string{
			"Check that the source and target point at different revisions",
		},
		Err: err,
	}
}

// ConfigInvalid creates an error for a configuration that fails to load or validate.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .changelogtxt.yml and ~/.config/changelogtxt/config.yml",
		"Check CHANGELOGTXT_* environment variables",
		"Show the effective configuration with: changelogtxt config show",
	)
}
