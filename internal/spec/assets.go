package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvedImage pairs an imagePath as written in the spec with the absolute,
// existence-checked file path it resolved to.
type ResolvedImage struct {
	ImagePath    string `json:"declaredPath"`
	ResolvedPath string `json:"resolvedPath"`
}

// MissingAssetError lists every declared image path that resolved to a
// missing file, so an operator can fix them all in one pass.
type MissingAssetError struct {
	Paths []string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("image files not found: %s", strings.Join(e.Paths, ", "))
}

// ResolveImages resolves every distinct imagePath referenced by the spec's
// ads to an absolute existing file. Paths are deduplicated in order of
// first reference; each ResolvedImage appears once no matter how many ads
// share it.
//
// Resolution order per path: absolute paths are taken as-is; otherwise the
// path is tried relative to repoRoot, then relative to specDir (so a spec
// can ship alongside its assets).
func ResolveImages(doc *CampaignSpec, repoRoot, specDir string) ([]ResolvedImage, error) {
	var images []ResolvedImage
	seen := make(map[string]bool)
	for _, ad := range doc.Ads {
		p := ad.Creative.ImagePath
		if seen[p] {
			continue
		}
		seen[p] = true
		images = append(images, ResolvedImage{
			ImagePath:    p,
			ResolvedPath: resolvePath(p, repoRoot, specDir),
		})
	}

	var missing []string
	for _, img := range images {
		if _, err := os.Stat(img.ResolvedPath); err != nil {
			missing = append(missing, img.ImagePath)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingAssetError{Paths: missing}
	}
	return images, nil
}

func resolvePath(declared, repoRoot, specDir string) string {
	if filepath.IsAbs(declared) {
		return declared
	}
	rooted := filepath.Join(repoRoot, declared)
	if _, err := os.Stat(rooted); err == nil {
		return rooted
	}
	return filepath.Join(specDir, declared)
}
