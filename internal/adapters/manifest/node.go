package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/locksmith/internal/adapters/fs"
	"go.trai.ch/locksmith/internal/adapters/logger"
	"go.trai.ch/locksmith/internal/core/ports"
)

// NodeID is the unique identifier for the manifest store Graft node.
const NodeID graft.ID = "adapter.manifest_store"

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WriterNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ManifestStore, error) {
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
