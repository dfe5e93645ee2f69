package rootdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.Mkdir(filepath.Join(home, DefaultName), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(home, "custom"), 0755))

	realHome, err := filepath.EvalSymlinks(home)
	require.NoError(t, err)

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"default", "", filepath.Join(home, DefaultName)},
		{"tilde", "~/custom", filepath.Join(realHome, "custom")},
		{"bare tilde", "~", realHome},
		{"absolute", filepath.Join(home, "custom"), filepath.Join(realHome, "custom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ffmpeg"), 0755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	realDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	got, err := Resolve("ffmpeg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realDir, "ffmpeg"), got)
}

func TestResolveFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ffmpeg-6.1")
	require.NoError(t, os.Mkdir(target, 0755))
	link := filepath.Join(dir, "ffmpeg")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)

	got, err := Resolve(link)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	missing := filepath.Join(home, "nope")
	got, err := Resolve(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, missing, got)

	// No ~/ffmpeg was created.
	_, err = Resolve("")
	assert.True(t, errors.Is(err, ErrNotFound))
}
