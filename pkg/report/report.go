package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/branchdiff/branchdiff/pkg/packages"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/exp/maps"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Report is the stable, render-ready view of a diff. All groupings are
// sorted by package name so repeated runs produce identical output.
type Report struct {
	Branch1      string      `json:"branch1"`
	Branch2      string      `json:"branch2"`
	Arch         string      `json:"arch"`
	OnlyInFirst  []string    `json:"onlyInFirst"`
	OnlyInSecond []string    `json:"onlyInSecond"`
	Differing    []Differing `json:"differing"`
}

type Differing struct {
	Name   string `json:"name"`
	First  string `json:"first"`
	Second string `json:"second"`
	// Newer holds the branch name that carries the newer record
	Newer string `json:"newer"`
}

// New builds a report from the diff of the two collections. The
// collections are only consulted for the version strings of packages
// unique to one side.
func New(branch1, branch2, arch string, first, second packages.Collection, d packages.Diff) *Report {
	r := &Report{
		Branch1:      branch1,
		Branch2:      branch2,
		Arch:         arch,
		OnlyInFirst:  nevrList(d.OnlyInFirst, first),
		OnlyInSecond: nevrList(d.OnlyInSecond, second),
	}

	names := maps.Keys(d.Differing)
	sort.Strings(names)
	r.Differing = make([]Differing, 0, len(names))
	for _, name := range names {
		delta := d.Differing[name]
		newer := branch1
		if delta.Newer == packages.SecondNewer {
			newer = branch2
		}
		r.Differing = append(r.Differing, Differing{
			Name:   name,
			First:  delta.First.EVR().String(),
			Second: delta.Second.EVR().String(),
			Newer:  newer,
		})
	}
	return r
}

// Render writes the report in the requested format.
func (r *Report) Render(format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		return r.JSON(w)
	case FormatText:
		return r.Text(w)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func (r *Report) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(r)
}

func (r *Report) Text(w io.Writer) error {
	for _, section := range []struct {
		title string
		names []string
	}{
		{fmt.Sprintf("Only in %s", r.Branch1), r.OnlyInFirst},
		{fmt.Sprintf("Only in %s", r.Branch2), r.OnlyInSecond},
	} {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("%s (%d)", section.title, len(section.names))
		for _, name := range section.names {
			t.AppendRow(table.Row{name})
		}
		t.Render()
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Version differs (%d)", len(r.Differing))
	t.AppendHeader(table.Row{"Package", r.Branch1, r.Branch2, "Newer"})
	for _, d := range r.Differing {
		t.AppendRow(table.Row{d.Name, d.First, d.Second, d.Newer})
	}
	t.Render()
	return nil
}

// nevrList maps sorted package names to their NEVR strings. The
// groupings are sorted by name, not by the rendered string, so an
// epoch prefix cannot reorder entries.
func nevrList(names []string, records packages.Collection) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	out := make([]string, 0, len(sorted))
	for _, name := range sorted {
		out = append(out, records[name].String())
	}
	return out
}
