package cli

import (
	"errors"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	"github.com/ariel-frischer/changelogtxt/internal/config"
	clierrors "github.com/ariel-frischer/changelogtxt/internal/errors"
	"github.com/ariel-frischer/changelogtxt/internal/fsutil"
)

// Classify translates an error from the core packages into a CLIError with remediation.
// Errors that already are CLIErrors are returned unchanged.
func Classify(err error) *clierrors.CLIError {
	if err == nil {
		return nil
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var (
		formatErr     *changelog.FormatError
		overwriteErr  *changelog.OverwriteError
		validationErr *changelog.ValidationError
		configErr     *config.ValidationError
	)
	switch {
	case errors.As(err, &configErr):
		return clierrors.ConfigInvalid(err)
	case errors.As(err, &formatErr):
		return clierrors.InvalidFormat(err)
	case fsutil.IsNotFound(err):
		return clierrors.ChangelogNotFound(err)
	case errors.As(err, &overwriteErr):
		return clierrors.VersionExists(err, overwriteErr.Version)
	case errors.As(err, &validationErr):
		return clierrors.InvalidTag(err)
	case errors.Is(err, changelog.ErrNoDifferences):
		return clierrors.NoDifferences(err)
	case errors.Is(err, fsutil.ErrIsDirectory):
		return clierrors.Wrap(err, clierrors.Argument, "Pass a file, or a directory containing the changelog, with --file")
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}
