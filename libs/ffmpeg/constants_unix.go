//go:build !windows
// +build !windows

package ffmpeg

// pcPath formats an installation root the way it is written into `.pc` files.
// On Unix, the native path works without problems.
func pcPath(root string) string {
	return root
}
