// Package catalog implements the traversal of the Oracle Analytics web catalog.
package catalog

import (
	"fmt"
	"log/slog"

	"github.com/oas-tools/oasctl/internal/saw"
)

// Lister lists the immediate children of a catalog folder.
type Lister interface {
	GetSubItems(folder, sessionID string) ([]saw.ItemInfo, error)
}

// Walker walks the catalog tree and collects object paths by signature.
//
// The walk is depth-first, synchronous and blocking. The remote hierarchy is
// assumed acyclic, so there is no cycle detection and no depth limit.
type Walker struct {
	lister Lister
	log    *slog.Logger
}

// New returns a Walker listing folders through lister.
func New(l *slog.Logger, lister Lister) Walker {
	return Walker{lister: lister, log: l}
}

// Find walks the tree rooted at folder and returns the paths of all non-folder
// items whose signature matches.
//
// A listing failure below the root is logged and that folder is skipped; a
// failure to list the root itself is returned as an error.
func (w Walker) Find(folder, signature, sessionID string) ([]string, error) {
	items, err := w.lister.GetSubItems(folder, sessionID)
	if err != nil {
		return nil, fmt.Errorf("could not list folder %s: %w", folder, err)
	}

	var paths []string
	w.walk(items, signature, sessionID, &paths)
	return paths, nil
}

func (w Walker) walk(items []saw.ItemInfo, signature, sessionID string, paths *[]string) {
	for _, item := range items {
		w.log.Debug("Catalog item", "path", item.Path, "type", item.Type, "signature", item.Signature)

		if item.Type == saw.ItemTypeFolder {
			sub, err := w.lister.GetSubItems(item.Path, sessionID)
			if err != nil {
				w.log.Error("Could not list folder, skipping", "folder", item.Path, "error", err)
				continue
			}
			w.walk(sub, signature, sessionID, paths)
			continue
		}

		if item.Signature == signature {
			w.log.Info("Found matching item", "path", item.Path)
			*paths = append(*paths, item.Path)
		}
	}
}
