package packages

import (
	"context"

	"github.com/go-logr/logr"
)

// NewCollection folds a branch listing into a Collection. If the feed
// repeats a name the last record wins; the overwrite is logged so a
// broken feed is at least visible. Records without a name are dropped.
func NewCollection(ctx context.Context, records []Record) Collection {
	log := logr.FromContextOrDiscard(ctx)

	out := make(Collection, len(records))
	for _, r := range records {
		if r.Name == "" {
			log.V(1).Info("skipping record without a name", "record", r)
			continue
		}
		if prev, ok := out[r.Name]; ok {
			log.V(2).Info("duplicate package in listing, keeping the later record", "previous", prev.String(), "next", r.String())
		}
		out[r.Name] = r
	}
	return out
}
