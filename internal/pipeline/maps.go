package pipeline

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nowhitestar/process-builder-data/internal"
	"github.com/Nowhitestar/process-builder-data/internal/util"
)

// SectorAccumulator collects sector → type → project ids during the row
// loop. It is owned by the driver and passed explicitly; maps are rendered
// only after every row has been recorded.
type SectorAccumulator struct {
	order   []string
	sectors map[string]map[string][]string
}

func NewSectorAccumulator() *SectorAccumulator {
	return &SectorAccumulator{sectors: map[string]map[string][]string{}}
}

func (a *SectorAccumulator) Record(sector, typeName, id string) {
	types, ok := a.sectors[sector]
	if !ok {
		types = map[string][]string{}
		a.sectors[sector] = types
		a.order = append(a.order, sector)
	}
	types[typeName] = append(types[typeName], id)
}

func (a *SectorAccumulator) Sectors() int {
	return len(a.sectors)
}

// RenderAll writes one map document per sector, types ordered by original
// type name and project ids sorted lexicographically.
func (a *SectorAccumulator) RenderAll(mapsDir string) ([]string, error) {
	written := make([]string, 0, len(a.order))
	for _, sector := range a.order {
		types := a.sectors[sector]

		typeNames := make([]string, 0, len(types))
		for name := range types {
			typeNames = append(typeNames, name)
		}
		sort.Strings(typeNames)

		doc := internal.SectorMap{Sector: sector, Types: make([]internal.TypeGroup, 0, len(typeNames))}
		for _, name := range typeNames {
			ids := append([]string(nil), types[name]...)
			sort.Strings(ids)
			doc.Types = append(doc.Types, internal.TypeGroup{
				ID:       util.Slugify(name),
				Name:     name,
				Projects: ids,
			})
		}

		path := filepath.Join(mapsDir, strings.ToLower(sector)+".json")
		if err := writeJSONFile(path, doc); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
