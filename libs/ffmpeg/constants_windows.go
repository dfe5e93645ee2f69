package ffmpeg

import "path/filepath"

// pcPath formats an installation root the way it is written into `.pc` files.
// pkg-config treats a backslash as an escape character, so a native Windows
// path like `C:\ffmpeg` would reach the compiler as `C:ffmpeg`. Forward
// slashes are understood by both pkg-config and the toolchain.
func pcPath(root string) string {
	return filepath.ToSlash(root)
}
