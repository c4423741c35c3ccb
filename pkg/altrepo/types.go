package altrepo

import (
	"github.com/branchdiff/branchdiff/pkg/packages"
)

// BranchExport is the payload returned by the repository database
// export endpoint for one branch and architecture.
type BranchExport struct {
	RequestArgs RequestArgs `json:"request_args,omitempty"`
	Length      int64       `json:"length"`
	Packages    []Package   `json:"packages"`
}

type RequestArgs struct {
	Arch string `json:"arch,omitempty"`
}

type Package struct {
	Name      string `json:"name"`
	Epoch     int64  `json:"epoch"`
	Version   string `json:"version"`
	Release   string `json:"release"`
	Arch      string `json:"arch"`
	Disttag   string `json:"disttag,omitempty"`
	Buildtime int64  `json:"buildtime,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Records converts the raw export entries into package records.
func (e *BranchExport) Records() []packages.Record {
	out := make([]packages.Record, 0, len(e.Packages))
	for _, p := range e.Packages {
		out = append(out, packages.Record{
			Name:    p.Name,
			Epoch:   p.Epoch,
			Version: p.Version,
			Release: p.Release,
			Arch:    p.Arch,
		})
	}
	return out
}
