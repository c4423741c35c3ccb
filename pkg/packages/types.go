package packages

import (
	"fmt"

	"github.com/branchdiff/branchdiff/pkg/rpmver"
)

// Record describes one binary package as published on a branch.
type Record struct {
	Name    string
	Epoch   int64
	Version string
	Release string
	Arch    string
}

func (r Record) EVR() rpmver.EVR {
	return rpmver.EVR{
		Epoch:   r.Epoch,
		Version: r.Version,
		Release: r.Release,
	}
}

// String renders the record in NEVR form (e.g. "bash-2:5.2-alt1").
func (r Record) String() string {
	return fmt.Sprintf("%s-%s", r.Name, r.EVR())
}

// Collection maps package names to their records for one branch. It
// is built once and never mutated afterwards.
type Collection map[string]Record

// Side marks which branch holds the newer record of a differing pair.
type Side string

const (
	FirstNewer  Side = "first"
	SecondNewer Side = "second"
)

// VersionDelta holds both records of a package present on the two
// branches at different versions.
type VersionDelta struct {
	First  Record
	Second Record
	Newer  Side
}

// Diff partitions the names of two collections. Names present on both
// sides with identical triples are omitted entirely.
type Diff struct {
	OnlyInFirst  []string
	OnlyInSecond []string
	Differing    map[string]VersionDelta
}
