// Package uasset decodes cooked UE4 package files into an immutable
// typed tree. A package is a header buffer (.uasset: summary, name
// table, import table, export table) plus a companion export-data
// buffer (.uexp: serialized DataTable rows).
//
// A decode call is side-effect-free and shares no state with other
// calls, so independent packages may be decoded concurrently without
// coordination.
package uasset

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Package is the decoded tree. It is built once by Decode and never
// mutated afterwards; cross-references between tables are by index only,
// so the structure stays acyclic even under circular class or package
// references.
type Package struct {
	Header  *PackageHeader
	Names   NameTable
	Imports []ImportRecord
	Exports []ExportRecord
	Rows    []Row

	// ParseErrors records the recoverable conditions hit while decoding.
	// The tables above hold everything salvaged before each one.
	ParseErrors []string
}

func (p *Package) addParseError(stage string, err error) {
	p.ParseErrors = append(p.ParseErrors, fmt.Sprintf("%s: %v", stage, err))
}

// Decode parses a package from its two buffers. The returned Package is
// never nil: on any failure it holds whatever was decoded before the
// error. The error return is non-nil only for a structural failure (bad
// magic tag); every other condition is recorded in ParseErrors.
func Decode(headerBuf, exportBuf []byte) (*Package, error) {
	pkg := &Package{}
	c := NewCursor(headerBuf)

	h, err := readHeader(c)
	pkg.Header = h
	if err != nil {
		if structural, ok := err.(*StructuralError); ok {
			pkg.addParseError("header", structural)
			return pkg, structural
		}
		pkg.addParseError("header", err)
		return pkg, nil
	}

	pkg.Names, err = readNameTable(c, h)
	if err != nil {
		pkg.addParseError("name table", err)
	}

	pkg.Imports, err = readImportTable(c, h, pkg.Names)
	if err != nil {
		pkg.addParseError("import table", err)
	}

	pkg.Exports, err = readExportTable(c, h, pkg.Names, pkg.Imports)
	if err != nil {
		pkg.addParseError("export table", err)
	}

	if len(exportBuf) > 0 {
		d := NewDecoder(pkg.Names)
		pkg.Rows, err = d.DecodeTable(exportBuf)
		if err != nil {
			pkg.addParseError("rows", err)
		}
	}

	return pkg, nil
}

// exportMeta is the reduced export view carried in the JSON form.
type exportMeta struct {
	ObjectName   string `json:"object_name"`
	ClassName    string `json:"class_name"`
	SerialSize   int64  `json:"serial_size"`
	SerialOffset int64  `json:"serial_offset"`
}

// MarshalJSON renders the tree in the generic form consumed by the
// downstream tooling: header summary, names, imports, export metadata
// and rows keyed by row name.
func (p *Package) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"names": p.Names.Strings(),
	}

	if p.Header != nil {
		out["header"] = map[string]any{
			"file_version_ue4": p.Header.FileVersionUE4,
			"folder_name":      p.Header.FolderName,
			"package_flags":    p.Header.PackageFlags,
			"name_count":       p.Header.NameCount,
			"import_count":     p.Header.ImportCount,
			"export_count":     p.Header.ExportCount,
			"guid":             hex.EncodeToString(p.Header.GUID[:]),
		}
	}

	imports := make([]map[string]any, len(p.Imports))
	for i, imp := range p.Imports {
		imports[i] = map[string]any{
			"class_package": imp.ClassPackage,
			"class_name":    imp.ClassName,
			"outer_index":   imp.OuterIndex,
			"object_name":   imp.ObjectName,
		}
	}
	out["imports"] = imports

	exports := make([]exportMeta, len(p.Exports))
	for i, exp := range p.Exports {
		exports[i] = exportMeta{
			ObjectName:   exp.ObjectName,
			ClassName:    exp.ClassName,
			SerialSize:   exp.SerialSize,
			SerialOffset: exp.SerialOffset,
		}
	}
	out["exports_meta"] = exports

	rows := make([]map[string]any, len(p.Rows))
	for i, row := range p.Rows {
		r := map[string]any{
			"_index":    i,
			"_row_name": row.Name,
		}
		if row.Partial {
			r["_partial"] = true
		}
		for _, prop := range row.Properties {
			r[prop.jsonKey()] = prop.Value.jsonValue()
		}
		rows[i] = r
	}
	out["rows"] = rows

	if len(p.ParseErrors) > 0 {
		out["parse_errors"] = p.ParseErrors
	}

	return json.Marshal(out)
}
