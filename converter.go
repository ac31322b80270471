package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/datatable-tools/go-uasset-converter/uasset"
)

// Converter handles the conversion of one package pair to JSON
type Converter struct {
	uassetFilename string
	uexpFilename   string
	jsonFilename   string
	lz4            bool
	hc             bool
}

// NewConverter creates a converter for one .uasset file. The companion
// .uexp and the output name are derived from it.
func NewConverter(uassetFile string, lz4, hc bool) *Converter {
	base := strings.TrimSuffix(uassetFile, filepath.Ext(uassetFile))
	return &Converter{
		uassetFilename: uassetFile,
		uexpFilename:   base + ".uexp",
		jsonFilename:   base + ".json",
		lz4:            lz4,
		hc:             hc,
	}
}

// OutputFilename returns the path the conversion will write.
func (c *Converter) OutputFilename() string {
	if c.lz4 {
		return c.jsonFilename + ".lz4"
	}
	return c.jsonFilename
}

// Convert decodes the package pair and writes the JSON output. A package
// that fails structurally still gets its output written, with the
// parse_errors annotation in the tree, so batch runs keep a record of
// every file.
func (c *Converter) Convert() error {
	headerBuf, closeHeader, err := mapFile(c.uassetFilename)
	if err != nil {
		return fmt.Errorf("opening package file: %w", err)
	}
	defer closeHeader()

	// The export-data file is optional; header-only packages decode to
	// an empty row list.
	exportBuf, closeExport, err := mapFileOptional(c.uexpFilename)
	if err != nil {
		return fmt.Errorf("opening export data file: %w", err)
	}
	defer closeExport()

	pkg, err := uasset.Decode(headerBuf, exportBuf)
	if err != nil {
		fmt.Printf("Warning: %s: %v\n", c.uassetFilename, err)
	}

	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	if c.lz4 {
		out, err = c.compressData(out)
		if err != nil {
			return fmt.Errorf("compressing output: %w", err)
		}
	}

	if err := os.WriteFile(c.OutputFilename(), out, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// mapFile memory-maps a file read-only and returns its bytes plus a
// cleanup func.
func mapFile(filename string) ([]byte, func(), error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	cleanup := func() {
		m.Unmap()
		file.Close()
	}
	return m, cleanup, nil
}

// mapFileOptional is mapFile for files that may legitimately be missing.
func mapFileOptional(filename string) ([]byte, func(), error) {
	buf, cleanup, err := mapFile(filename)
	if os.IsNotExist(err) {
		return nil, func() {}, nil
	}
	return buf, cleanup, err
}
