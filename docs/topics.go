// Package docs embeds the help topics of the pay command: the record formats,
// the dispute life-cycle and the policy options.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

const (
	// Readme is the topic shown when none is asked for.
	Readme = "readme"
	// All stands for every topic but the readme.
	All = "*"
)

// Names returns the sorted topic names, readme excluded.
func Names() []string {
	// the pattern is constant, Glob cannot fail.
	matches, _ := fs.Glob(files, "*.md")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if name := strings.TrimSuffix(path.Base(m), ".md"); name != Readme {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Topic returns the markdown text of the topic 'name'.
func Topic(name string) (string, error) {
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown topic %q, want one of %s or %s", name, Readme, strings.Join(Names(), ", "))
	}
	return string(content), nil
}

// Topics returns the markdown text of several topics, one after the other.
// All expands to every topic, and no name at all means the readme.
func Topics(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{Readme}
	}
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			expanded = Names()
		}
		for _, n := range expanded {
			content, err := Topic(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
