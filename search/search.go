// Package search recursively locates survey files under a URI, local or
// object store, via TileDB's VFS (grounded on the teacher's search.go).
package search

import (
	"path/filepath"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// trawl is the internal recursive walker; pattern is matched against the
// basename only (e.g. "*.all", "0030_20220614_103000_Investigator.all").
func trawl(vfs *tiledb.VFS, pattern string, uri string, items []string) ([]string, error) {
	dirs, files, err := vfs.List(uri)
	if err != nil {
		return items, err
	}

	for _, file := range files {
		match, err := filepath.Match(pattern, filepath.Base(file))
		if err != nil {
			return items, err
		}
		if match {
			items = append(items, file)
		}
	}

	for _, dir := range dirs {
		items, err = trawl(vfs, pattern, dir, items)
		if err != nil {
			return items, err
		}
	}

	return items, nil
}

// FindSurveys recursively searches uri for Kongsberg EM series ("*.all")
// and Imagenex DeltaT ("*.83P", "*.83M") survey files. A configUri, when
// non-empty, supplies the TileDB config needed to reach an object store
// under access constraints.
func FindSurveys(uri, configUri string) ([]string, error) {
	config, err := loadConfig(configUri)
	if err != nil {
		return nil, err
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return nil, err
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		return nil, err
	}
	defer vfs.Free()

	var items []string
	for _, pattern := range []string{"*.all", "*.83P", "*.83M"} {
		items, err = trawl(vfs, pattern, uri, items)
		if err != nil {
			return nil, err
		}
	}

	return items, nil
}

func loadConfig(configUri string) (*tiledb.Config, error) {
	if configUri == "" {
		return tiledb.NewConfig()
	}
	return tiledb.LoadConfig(configUri)
}
