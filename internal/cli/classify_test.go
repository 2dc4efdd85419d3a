package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	"github.com/ariel-frischer/changelogtxt/internal/config"
	clierrors "github.com/ariel-frischer/changelogtxt/internal/errors"
	"github.com/ariel-frischer/changelogtxt/internal/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	argErr := clierrors.NewArgumentError("bad")

	tests := map[string]struct {
		err          error
		wantCategory clierrors.ErrorCategory
		wantMessage  string
	}{
		"format error": {
			err:          &changelog.FormatError{Line: 2, Message: "Expected content after '-'"},
			wantCategory: clierrors.Format,
			wantMessage:  "invalid changelog format at line 2",
		},
		"not found": {
			err:          &fsutil.NotFoundError{Path: "/x/CHANGELOG.txt"},
			wantCategory: clierrors.NotFound,
			wantMessage:  "file not found",
		},
		"overwrite": {
			err:          fmt.Errorf("updating: %w", &changelog.OverwriteError{Version: "v1.0.0"}),
			wantCategory: clierrors.Validation,
			wantMessage:  "cannot overwrite an existing version v1.0.0",
		},
		"tag not found": {
			err:          &changelog.ValidationError{Message: "tag 'v9.9.9' not found in changelog"},
			wantCategory: clierrors.Validation,
			wantMessage:  "v9.9.9",
		},
		"no differences": {
			err:          changelog.ErrNoDifferences,
			wantCategory: clierrors.Validation,
			wantMessage:  "no differences",
		},
		"config": {
			err:          &config.ValidationError{FilePath: "config", Field: "output", Message: "must be one of: text, json, yaml"},
			wantCategory: clierrors.Configuration,
			wantMessage:  "invalid configuration",
		},
		"directory": {
			err:          fmt.Errorf("%w: /tmp", fsutil.ErrIsDirectory),
			wantCategory: clierrors.Argument,
			wantMessage:  "expected a file",
		},
		"already classified": {
			err:          argErr,
			wantCategory: clierrors.Argument,
			wantMessage:  "bad",
		},
		"other": {
			err:          errors.New("disk on fire"),
			wantCategory: clierrors.Runtime,
			wantMessage:  "disk on fire",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Contains(t, got.Message, tt.wantMessage)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, Classify(nil))
}
