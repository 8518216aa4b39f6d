package metadata

import (
	"os"
	"time"
)

// createdAt returns the best available creation timestamp for info. The
// stdlib os.FileInfo does not expose a birth time portably across platforms,
// and nothing in the corpus wires a platform-specific stat library for it
// either, so this falls back to ModTime — the same compromise made wherever
// the pack reports a "created" field from plain os.Stat.
func createdAt(info os.FileInfo) time.Time {
	return info.ModTime()
}
