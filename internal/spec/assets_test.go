package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("png"), 0644))
}

func docWithImages(paths ...string) *CampaignSpec {
	doc := testDoc()
	doc.Ads = nil
	for _, p := range paths {
		ad := AdSpec{Name: "ad " + p, AdGroupRef: "ag1"}
		ad.Creative.ImagePath = p
		doc.Ads = append(doc.Ads, ad)
	}
	return doc
}

func TestResolveImagesAbsolutePath(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "banner.png")
	writeFile(t, abs)

	images, err := ResolveImages(docWithImages(abs), t.TempDir(), t.TempDir())
	require.NoError(t, err)
	require.Len(t, images, 1)
	require.Equal(t, abs, images[0].ResolvedPath)
}

func TestResolveImagesPrefersRepoRoot(t *testing.T) {
	repoRoot := t.TempDir()
	specDir := t.TempDir()
	writeFile(t, filepath.Join(repoRoot, "assets", "banner.png"))
	writeFile(t, filepath.Join(specDir, "assets", "banner.png"))

	images, err := ResolveImages(docWithImages("assets/banner.png"), repoRoot, specDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(repoRoot, "assets", "banner.png"), images[0].ResolvedPath)
}

func TestResolveImagesFallsBackToSpecDir(t *testing.T) {
	repoRoot := t.TempDir()
	specDir := t.TempDir()
	writeFile(t, filepath.Join(specDir, "assets", "banner.png"))

	images, err := ResolveImages(docWithImages("assets/banner.png"), repoRoot, specDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(specDir, "assets", "banner.png"), images[0].ResolvedPath)
}

func TestResolveImagesDeduplicates(t *testing.T) {
	repoRoot := t.TempDir()
	writeFile(t, filepath.Join(repoRoot, "a.png"))
	writeFile(t, filepath.Join(repoRoot, "b.png"))

	// a.png referenced twice, b.png once; order of first reference wins.
	images, err := ResolveImages(docWithImages("a.png", "b.png", "a.png"), repoRoot, t.TempDir())
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, "a.png", images[0].ImagePath)
	require.Equal(t, "b.png", images[1].ImagePath)
}

func TestResolveImagesListsAllMissing(t *testing.T) {
	repoRoot := t.TempDir()
	writeFile(t, filepath.Join(repoRoot, "exists.png"))

	_, err := ResolveImages(docWithImages("missing1.png", "exists.png", "missing2.png"), repoRoot, t.TempDir())
	var mae *MissingAssetError
	require.ErrorAs(t, err, &mae)
	require.Equal(t, []string{"missing1.png", "missing2.png"}, mae.Paths)
}
