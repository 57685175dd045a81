// Package library manages the rule-set directory hierarchy.
//
// Directory layout:
//
//	<home>/
//	    local/<name>.yaml      # user rule sets, searched first
//	    examples/<name>.yaml   # bundled rule sets, installed on Open
//
// A rule-set name resolves to local/ before examples/, so a local file
// shadows the bundled one of the same name.
package library

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wordgen/internal/rules"
)

//go:embed examples/*.yaml
var bundled embed.FS

const (
	localDir    = "local"
	examplesDir = "examples"
	ext         = ".yaml"
)

// ErrNotFound is returned when a name resolves to no rule file.
var ErrNotFound = errors.New("rule set not found")

// Library is a rule-set directory rooted at Dir.
type Library struct {
	Dir string
}

// Entry describes one stored rule set.
type Entry struct {
	Name   string
	Origin string // "local" | "examples"
	Path   string
}

// Open prepares the library at dir, creating it and installing bundled
// examples that are not already present.
func Open(dir string) (*Library, error) {
	if dir == "" {
		return nil, fmt.Errorf("library: no home directory configured")
	}
	for _, sub := range []string{localDir, examplesDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create library: %w", err)
		}
	}
	l := &Library{Dir: dir}
	if err := l.installExamples(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Library) installExamples() error {
	names, err := fs.Glob(bundled, examplesDir+"/*"+ext)
	if err != nil {
		return err
	}
	for _, name := range names {
		dst := filepath.Join(l.Dir, examplesDir, filepath.Base(name))
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		data, err := bundled.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read bundled %s: %w", name, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("install %s: %w", filepath.Base(name), err)
		}
	}
	return nil
}

// IsPath reports whether ref names a file rather than a library entry.
func IsPath(ref string) bool {
	return strings.ContainsRune(ref, '/') || strings.ContainsRune(ref, filepath.Separator) ||
		strings.HasSuffix(ref, ext) || strings.HasSuffix(ref, ".yml")
}

// Resolve maps ref to a rule file path. Paths are returned unchanged; bare
// names are looked up in local/ and then examples/.
func (l *Library) Resolve(ref string) (string, error) {
	if IsPath(ref) {
		return ref, nil
	}
	for _, sub := range []string{localDir, examplesDir} {
		p := filepath.Join(l.Dir, sub, ref+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (looked in %s and %s)", ErrNotFound, ref,
		filepath.Join(l.Dir, localDir), filepath.Join(l.Dir, examplesDir))
}

// Load resolves ref and parses the rule file it names.
func (l *Library) Load(ref string) (rules.Rules, error) {
	p, err := l.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return rules.Load(p)
}

// Save writes r to local/<name>.yaml and returns the path. It errors if the
// file exists and overwrite is false.
func (l *Library) Save(name string, r rules.Rules, overwrite bool) (string, error) {
	if name == "" || IsPath(name) {
		return "", fmt.Errorf("invalid rule set name %q", name)
	}
	p := filepath.Join(l.Dir, localDir, name+ext)
	if _, err := os.Stat(p); err == nil && !overwrite {
		return "", fmt.Errorf("rule set %q already exists at %s", name, p)
	}
	data, err := rules.Marshal(r)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write rule set: %w", err)
	}
	return p, nil
}

// List returns every stored rule set, local entries first, each group
// sorted by name.
func (l *Library) List() ([]Entry, error) {
	var out []Entry
	for _, sub := range []string{localDir, examplesDir} {
		entries, err := os.ReadDir(filepath.Join(l.Dir, sub))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", sub, err)
		}
		var group []Entry
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
				continue
			}
			group = append(group, Entry{
				Name:   strings.TrimSuffix(e.Name(), ext),
				Origin: sub,
				Path:   filepath.Join(l.Dir, sub, e.Name()),
			})
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
		out = append(out, group...)
	}
	return out, nil
}

// Remove deletes local/<name>.yaml. Bundled examples cannot be removed.
func (l *Library) Remove(name string) error {
	p := filepath.Join(l.Dir, localDir, name+ext)
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("%w: %q in %s", ErrNotFound, name, filepath.Join(l.Dir, localDir))
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("remove rule set: %w", err)
	}
	return nil
}
