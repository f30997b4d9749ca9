package export

import (
	"io"

	"flowkit/scene"
)

// JSON writes a snapshot as indented JSON, the same format the CLI loads.
func JSON(snap scene.Snapshot, w io.Writer) error {
	return scene.WriteSnapshot(w, snap)
}
