package pipeline

import (
	"os"
	"path/filepath"

	"github.com/Nowhitestar/process-builder-data/internal/util"
)

type PlannedPaths struct {
	ImageDir  string
	ImagePath string
	LogoRef   string
}

// PlanImagePaths derives the image directory, absolute image path and the
// root-relative logo reference for one entity, creating the directory tree
// eagerly whether or not a logo download follows. Spaces are stripped from
// the type component here; spaces in the sector survive until the repair
// pass runs.
func PlanImagePaths(outputDir, sector, typeName, id string) (PlannedPaths, error) {
	typeDir := util.StripSpaces(typeName)
	dir := filepath.Join(outputDir, "imgs", sector, typeDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return PlannedPaths{}, err
	}

	filename := id + ".png"
	return PlannedPaths{
		ImageDir:  dir,
		ImagePath: filepath.Join(dir, filename),
		LogoRef:   "/imgs/" + sector + "/" + typeDir + "/" + filename,
	}, nil
}
