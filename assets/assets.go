// Package assets bundles the demo stories shipped with the tools.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Ext is the source file extension.
const Ext = ".src"

// Story sources, checked in as plain text.
//
//go:embed stories/*.src
var storiesFS embed.FS

// Stories lists the bundled story names, without extension.
func Stories() ([]string, error) {
	entries, err := fs.ReadDir(storiesFS, "stories")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, elem := range entries {
		if elem.IsDir() || !strings.HasSuffix(elem.Name(), Ext) {
			continue
		}
		out = append(out, strings.TrimSuffix(elem.Name(), Ext))
	}
	return out, nil
}

// Story returns the source of a bundled story.
func Story(name string) (string, error) {
	data, err := storiesFS.ReadFile(path.Join("stories", name+Ext))
	if err != nil {
		return "", fmt.Errorf("unknown story %q: %w", name, err)
	}
	return string(data), nil
}
