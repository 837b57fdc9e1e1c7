package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nowhitestar/process-builder-data/internal"
)

func TestFixPathSpacesIdempotent(t *testing.T) {
	tmp := t.TempDir()
	spaced := filepath.Join(tmp, "imgs", "DeFi", "Dev Tools")
	if err := os.MkdirAll(spaced, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(spaced, "testproject.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := FixPathSpaces(tmp); err != nil {
		t.Fatal(err)
	}
	fixed := filepath.Join(tmp, "imgs", "DeFi", "DevTools")
	if _, err := os.Stat(filepath.Join(fixed, "testproject.png")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(spaced); !os.IsNotExist(err) {
		t.Fatalf("spaced dir still present: %v", err)
	}

	// second pass over already-fixed names must be a no-op
	if err := FixPathSpaces(tmp); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(fixed, "testproject.png")); err != nil {
		t.Fatal(err)
	}
}

func TestFixPathSpacesMissingTree(t *testing.T) {
	if err := FixPathSpaces(t.TempDir()); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateLogoRefs(t *testing.T) {
	tmp := t.TempDir()

	project := internal.Project{
		ID:   "testproject",
		Name: "TestProject",
		Links: internal.ProjectLinks{
			Logo: "/imgs/DeFi/Dev Tools/testproject.png",
		},
	}
	path := filepath.Join(tmp, "testproject.json")
	if err := writeJSONFile(path, project); err != nil {
		t.Fatal(err)
	}

	clean := internal.Project{
		ID:    "other",
		Links: internal.ProjectLinks{Logo: "/imgs/DeFi/DEX/other.png"},
	}
	if err := writeJSONFile(filepath.Join(tmp, "other.json"), clean); err != nil {
		t.Fatal(err)
	}

	if err := UpdateLogoRefs(tmp); err != nil {
		t.Fatal(err)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got internal.Project
	if err := json.Unmarshal(blob, &got); err != nil {
		t.Fatal(err)
	}
	if got.Links.Logo != "/imgs/DeFi/DevTools/testproject.png" {
		t.Fatalf("logo=%q", got.Links.Logo)
	}
	if got.Name != "TestProject" {
		t.Fatalf("document not preserved: %+v", got)
	}

	// already-clean reference is untouched and a second pass is a no-op
	if err := UpdateLogoRefs(tmp); err != nil {
		t.Fatal(err)
	}
}
