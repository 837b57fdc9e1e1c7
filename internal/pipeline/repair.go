package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nowhitestar/process-builder-data/internal"
	"github.com/Nowhitestar/process-builder-data/internal/util"
)

// FixPathSpaces renames imgs/<sector>/<type> directories whose name contains
// a space to the space-stripped name. Idempotent; a missing imgs tree means
// nothing to repair.
func FixPathSpaces(outputDir string) error {
	imgsDir := filepath.Join(outputDir, "imgs")
	sectorEntries, err := os.ReadDir(imgsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, sectorEntry := range sectorEntries {
		if !sectorEntry.IsDir() {
			continue
		}
		sectorDir := filepath.Join(imgsDir, sectorEntry.Name())
		typeEntries, err := os.ReadDir(sectorDir)
		if err != nil {
			return err
		}
		for _, typeEntry := range typeEntries {
			if !typeEntry.IsDir() || !strings.Contains(typeEntry.Name(), " ") {
				continue
			}
			oldPath := filepath.Join(sectorDir, typeEntry.Name())
			newPath := filepath.Join(sectorDir, util.StripSpaces(typeEntry.Name()))
			if err := os.Rename(oldPath, newPath); err != nil {
				return fmt.Errorf("rename %s: %w", oldPath, err)
			}
		}
	}
	return nil
}

// UpdateLogoRefs rewrites any stored links.logo reference containing a space,
// re-serializing the whole document in place.
func UpdateLogoRefs(projectsDir string) error {
	files, err := filepath.Glob(filepath.Join(projectsDir, "*.json"))
	if err != nil {
		return err
	}

	for _, file := range files {
		blob, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		var project internal.Project
		if err := json.Unmarshal(blob, &project); err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		if !strings.Contains(project.Links.Logo, " ") {
			continue
		}
		project.Links.Logo = util.StripSpaces(project.Links.Logo)
		if err := writeJSONFile(file, project); err != nil {
			return err
		}
	}
	return nil
}
