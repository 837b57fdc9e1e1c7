package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Nowhitestar/process-builder-data/internal"
	"github.com/Nowhitestar/process-builder-data/internal/fetch"
	"github.com/Nowhitestar/process-builder-data/internal/util"
)

// RowFields are the named fields extracted from one source row, trimmed.
type RowFields struct {
	Name        string
	Sector      string
	Type        string
	Website     string
	Twitter     string
	Github      string
	Description string
	Location    string
}

func ExtractFields(t *Table, row []string) RowFields {
	get := func(name string) string { return strings.TrimSpace(t.Field(row, name)) }

	twitter := get("x")
	if twitter == "" {
		twitter = get("twitter")
	}

	return RowFields{
		Name:        get("name"),
		Sector:      get("sector"),
		Type:        get("type"),
		Website:     get("website"),
		Twitter:     twitter,
		Github:      get("github"),
		Description: get("description"),
		Location:    get("location"),
	}
}

// Normalizer builds one project document per row, driving the optional
// avatar and description fetches. Fetch failures never fail the row.
type Normalizer struct {
	avatars   fetch.AvatarFetcher
	describer fetch.DescriptionFetcher
	pacer     *fetch.Pacer
	skipLogos bool
	verbose   bool
}

// Normalize returns the document for one row and whether a logo was written.
func (n *Normalizer) Normalize(ctx context.Context, fields RowFields, id string, paths PlannedPaths) (internal.Project, bool) {
	downloaded := false
	if !n.skipLogos {
		if handle := util.TwitterHandle(fields.Twitter); handle != "" {
			n.pacer.Wait()
			blob, err := n.avatars.Fetch(ctx, handle)
			if err != nil {
				n.logf("logo download failed for %s: %v", id, err)
			} else if err := os.WriteFile(paths.ImagePath, blob, 0o644); err != nil {
				n.logf("logo write failed for %s: %v", id, err)
			} else {
				downloaded = true
			}
		} else {
			n.logf("no twitter link for %s, skipping logo", id)
		}
	}

	description := fields.Description
	if description == "" && fields.Website != "" {
		n.pacer.Wait()
		fetched, err := n.describer.Fetch(ctx, fields.Website)
		if err != nil {
			n.logf("description fetch failed for %s: %v", id, err)
			fetched = ""
		}
		if fetched == "" {
			description = fields.Name + " - crypto project"
		} else {
			description = fetched
		}
	}

	return internal.Project{
		ID:          id,
		Name:        fields.Name,
		Description: description,
		Location:    fields.Location,
		Links: internal.ProjectLinks{
			Logo:     paths.LogoRef,
			Homepage: fields.Website,
			Twitter:  fields.Twitter,
			Github:   fields.Github,
		},
	}, downloaded
}

func (n *Normalizer) logf(format string, args ...any) {
	if n.verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// idAllocator keeps a per-run seen-ids set so distinct names slugging to the
// same id are disambiguated with a numeric suffix instead of silently
// overwriting the earlier document.
type idAllocator struct {
	seen map[string]int
}

func newIDAllocator() *idAllocator {
	return &idAllocator{seen: map[string]int{}}
}

func (a *idAllocator) allocate(slug string) (string, bool) {
	a.seen[slug]++
	if a.seen[slug] == 1 {
		return slug, false
	}
	return fmt.Sprintf("%s-%d", slug, a.seen[slug]), true
}

func writeJSONFile(path string, v any) error {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}
