// Package pcfile inspects and edits pkg-config metadata files as plain text.
// Only the prefix variable and the Version field are looked at; everything
// else in the file is carried through untouched.
package pcfile

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// Ext is the file extension of pkg-config metadata files.
const Ext = ".pc"

var (
	prefixRegexp  = regexp.MustCompile(`^prefix=(.+)`)
	versionRegexp = regexp.MustCompile(`^Version:(.*)`)
)

// ErrNoVersion is returned by Version when the file has no Version field.
var ErrNoVersion = errors.New("no Version field")

// File is the content of a single .pc file.
type File struct {
	Path    string
	Content string
	Mode    os.FileMode
}

// Read loads the file at path.
func Read(path string) (*File, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Content: string(data), Mode: st.Mode().Perm()}, nil
}

// Name returns the base name of the file.
func (f *File) Name() string {
	return filepath.Base(f.Path)
}

// Write overwrites the file on disk with the current content.
func (f *File) Write() error {
	mode := f.Mode
	if mode == 0 {
		mode = 0644
	}
	return os.WriteFile(f.Path, []byte(f.Content), mode)
}

func lines(content string) []string {
	return strings.Split(content, "\n")
}

func prefixValue(line string) (string, bool) {
	m := prefixRegexp.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// Prefixes returns the distinct values of every prefix= line, in order
// of first appearance. Lines with an empty value are ignored.
func (f *File) Prefixes() []string {
	var (
		values []string
		seen   = make(map[string]bool)
	)
	for _, line := range lines(f.Content) {
		v, ok := prefixValue(line)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// FirstPrefix returns the trimmed value of the first prefix= line. A line
// holding only whitespace after the = counts as found with an empty value;
// a bare "prefix=" does not.
func (f *File) FirstPrefix() (string, bool) {
	for _, line := range lines(f.Content) {
		if !strings.HasPrefix(line, "prefix=") {
			continue
		}
		m := prefixRegexp.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// StalePrefixes returns the prefixes that differ from want.
func (f *File) StalePrefixes(want string) []string {
	var stale []string
	for _, p := range f.Prefixes() {
		if p != want {
			stale = append(stale, p)
		}
	}
	return stale
}

// ReplacePrefixes replaces every occurrence of each old value anywhere in
// the content with replacement. Matching is plain substring matching, so
// a literal old path inside Libs: or Cflags: is rewritten as well.
// Longer values are replaced first. It reports whether the content changed.
func (f *File) ReplacePrefixes(old []string, replacement string) bool {
	ordered := append([]string(nil), old...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	content := f.Content
	for _, o := range ordered {
		if o == "" || o == replacement {
			continue
		}
		content = strings.Replace(content, o, replacement, -1)
	}
	changed := content != f.Content
	f.Content = content
	return changed
}

// Version parses the Version field of the file.
func (f *File) Version() (*semver.Version, error) {
	for _, line := range lines(f.Content) {
		m := versionRegexp.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[1])
		v, err := semver.NewVersion(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid version %q", raw)
		}
		return v, nil
	}
	return nil, ErrNoVersion
}
