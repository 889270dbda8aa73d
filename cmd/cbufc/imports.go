package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// loadImportMap reads a YAML file mapping each #import path used in a cbuf
// source file to the filesystem path that provides it, then resolves those
// filesystem paths to their contents. The core cbuf package never touches
// a filesystem itself (spec §4.1); this is purely a CLI convenience.
//
// Example file:
//
//	common: ./include/common.cbuf
//	geometry: ./include/geometry.cbuf
func loadImportMap(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import map %s: %w", path, err)
	}

	var pathsByImport map[string]string
	if err := yaml.Unmarshal(raw, &pathsByImport); err != nil {
		return nil, fmt.Errorf("parsing import map %s: %w", path, err)
	}

	imports := make(map[string]string, len(pathsByImport))
	for importPath, filePath := range pathsByImport {
		text, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading import %q from %s: %w", importPath, filePath, err)
		}
		imports[importPath] = string(text)
	}
	return imports, nil
}
