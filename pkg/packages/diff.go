package packages

import (
	"github.com/branchdiff/branchdiff/pkg/rpmver"
)

// Compare partitions the two collections into packages unique to each
// side and packages present on both sides at different versions. It
// imposes no ordering; callers that need stable output must sort the
// groupings themselves.
func Compare(first, second Collection) Diff {
	d := Diff{
		Differing: map[string]VersionDelta{},
	}

	for name, a := range first {
		b, ok := second[name]
		if !ok {
			d.OnlyInFirst = append(d.OnlyInFirst, name)
			continue
		}
		switch rpmver.Compare(a.EVR(), b.EVR()) {
		case 0:
			// same triple on both branches, nothing to report
		case 1:
			d.Differing[name] = VersionDelta{First: a, Second: b, Newer: FirstNewer}
		case -1:
			d.Differing[name] = VersionDelta{First: a, Second: b, Newer: SecondNewer}
		}
	}
	for name := range second {
		if _, ok := first[name]; !ok {
			d.OnlyInSecond = append(d.OnlyInSecond, name)
		}
	}
	return d
}
