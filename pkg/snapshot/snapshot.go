package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/branchdiff/branchdiff/pkg/altrepo"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/hashicorp/go-getter"
)

// Write saves a branch listing to path as JSON so it can be diffed
// later without touching the network.
func Write(ctx context.Context, path string, export *altrepo.BranchExport) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)
	log.V(1).Info("writing snapshot", "count", export.Length)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Read loads a branch listing previously saved by Write. The source
// may be a local path or anything go-getter can fetch.
func Read(ctx context.Context, src string) (*altrepo.BranchExport, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("src", src)
	log.V(1).Info("downloading snapshot")

	dst := fmt.Sprintf("%s/%s-snapshot.json", os.TempDir(), uuid.NewString())
	client := &getter.Client{
		Ctx:             ctx,
		Src:             src,
		Dst:             dst,
		Mode:            getter.ClientModeFile,
		DisableSymlinks: true,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("downloading snapshot: %w", err)
	}

	f, err := os.Open(filepath.Clean(dst))
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var export altrepo.BranchExport
	if err := json.NewDecoder(f).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	log.V(1).Info("successfully loaded snapshot", "count", len(export.Packages))
	return &export, nil
}
