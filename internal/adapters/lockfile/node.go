package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/locksmith/internal/adapters/fs"
	"go.trai.ch/locksmith/internal/adapters/logger"
	"go.trai.ch/locksmith/internal/core/ports"
)

// NodeID is the unique identifier for the lockfile store Graft node.
const NodeID graft.ID = "adapter.lockfile_store"

func init() {
	graft.Register(graft.Node[ports.LockfileStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WriterNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.LockfileStore, error) {
			writer, err := graft.Dep[*fs.Writer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(writer, log), nil
		},
	})
}
