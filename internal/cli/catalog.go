package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/curiocat/curio/internal/atomicfile"
	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/translate"
)

// CollectionExt is the file extension for collection files.
const CollectionExt = ".curio"

// collectionPath resolves a collection argument to a file path.
// Arguments containing a path separator or the collection extension are
// taken as paths; bare names resolve inside the catalog directory.
func collectionPath(arg string) string {
	if strings.ContainsRune(arg, os.PathSeparator) || strings.HasSuffix(arg, CollectionExt) {
		if strings.HasSuffix(arg, CollectionExt) && !filepath.IsAbs(arg) && !strings.ContainsRune(arg, os.PathSeparator) {
			return filepath.Join(resolvedCatalog, arg)
		}
		return arg
	}
	return filepath.Join(resolvedCatalog, arg+CollectionExt)
}

// collectionName returns the display name of a collection file.
func collectionName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), CollectionExt)
}

// listCollectionFiles returns the collection files in the catalog,
// sorted by name.
func listCollectionFiles() ([]string, error) {
	entries, err := os.ReadDir(resolvedCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), CollectionExt) {
			continue
		}
		paths = append(paths, filepath.Join(resolvedCatalog, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// loadedCollection bundles a collection with everything its file carried.
type loadedCollection struct {
	Path     string
	Coll     *model.Collection
	Images   map[string][]byte
	Messages []string
}

// loadCollection reads and parses a collection file.
func loadCollection(path string) (*loadedCollection, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("collection not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	importer := translate.NewXMLImporter(f)
	coll, err := importer.Collection()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &loadedCollection{
		Path:     path,
		Coll:     coll,
		Images:   importer.Images(),
		Messages: importer.Messages(),
	}, nil
}

// saveCollection writes a collection file atomically.
func saveCollection(path string, c *model.Collection, images map[string][]byte) error {
	exporter := &translate.XMLExporter{Images: images}
	var buf bytes.Buffer
	if err := exporter.Export(c, &buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
