package rootdir

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultName is the directory under the user's home directory
// used when no installation root is given.
const DefaultName = "ffmpeg"

// ErrNotFound is returned when the installation root does not exist.
var ErrNotFound = errors.New("installation root not found")

// Default returns <home>/ffmpeg.
func Default() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot determine home directory")
	}
	return filepath.Join(home, DefaultName), nil
}

// Resolve turns the command-line path argument into the installation root.
// An empty argument selects the default root. Otherwise a leading ~ is
// expanded and the path is made absolute, following symlinks.
func Resolve(arg string) (string, error) {
	var root string
	if arg == "" {
		dir, err := Default()
		if err != nil {
			return "", err
		}
		root = dir
	} else {
		expanded, err := expandHome(arg)
		if err != nil {
			return "", err
		}
		if root, err = filepath.Abs(expanded); err != nil {
			return "", errors.Wrapf(err, "cannot make %s absolute", expanded)
		}
	}

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return root, errors.Wrapf(ErrNotFound, "%s", root)
		}
		return root, errors.Wrapf(err, "cannot access %s", root)
	}

	// The default root is used as is, so an explicit path is the only
	// one whose symlinks get resolved.
	if arg != "" {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return root, errors.Wrapf(err, "cannot resolve %s", root)
		}
		root = resolved
	}
	return root, nil
}

// expandHome expands "~", "~/rest" and "~name/rest". Anything else is
// returned unchanged.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	name, rest := path[1:], ""
	if i := strings.IndexAny(name, `/\`); i >= 0 {
		name, rest = name[:i], name[i+1:]
	}

	var home string
	if name == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "cannot determine home directory")
		}
		home = dir
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			return "", errors.Wrapf(err, "cannot expand %s", path)
		}
		home = u.HomeDir
	}

	if rest == "" {
		return home, nil
	}
	return filepath.Join(home, rest), nil
}
