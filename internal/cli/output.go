package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	"github.com/ariel-frischer/changelogtxt/internal/config"
	"gopkg.in/yaml.v3"
)

// entryView is the JSON/YAML shape of a section. The unreleased section carries the
// configured label as its version.
type entryView struct {
	Version    string   `json:"version" yaml:"version"`
	Unreleased bool     `json:"unreleased,omitempty" yaml:"unreleased,omitempty"`
	Changes    []string `json:"changes" yaml:"changes"`
}

type differenceView struct {
	Source       string      `json:"source" yaml:"source"`
	Target       string      `json:"target" yaml:"target"`
	OnlyInSource []entryView `json:"only_in_source" yaml:"only_in_source"`
	OnlyInTarget []entryView `json:"only_in_target" yaml:"only_in_target"`
	Diff         string      `json:"diff,omitempty" yaml:"diff,omitempty"`
}

func toEntryView(e changelog.VersionEntry, unreleasedLabel string) entryView {
	changes := e.Changes
	if changes == nil {
		changes = []string{}
	}
	return entryView{
		Version:    e.Label(unreleasedLabel),
		Unreleased: e.IsUnreleased(),
		Changes:    changes,
	}
}

func toEntryViews(entries []changelog.VersionEntry, unreleasedLabel string) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toEntryView(e, unreleasedLabel))
	}
	return views
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}
		return nil
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
