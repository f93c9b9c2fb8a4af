package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

// WriterNodeID is the unique identifier for the file writer Graft node.
const WriterNodeID graft.ID = "adapter.fs_writer"

func init() {
	graft.Register(graft.Node[*Writer]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Writer, error) {
			return NewWriter(), nil
		},
	})
}
