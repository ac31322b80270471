package uasset

import "fmt"

// ExportRecord describes one object serialized within the package, with
// the byte range of its payload in the export-data buffer.
type ExportRecord struct {
	ClassIndex    int64
	SuperIndex    int64
	TemplateIndex int32
	OuterIndex    int32

	ObjectName string
	ClassName  string

	ObjectFlags  uint32
	SerialSize   int64
	SerialOffset int64

	ForcedExport int32
	NotForClient int32
	NotForServer int32

	PackageGUID  [16]byte
	PackageFlags uint32

	NotAlwaysLoaded int32
	IsAsset         int32

	// FirstExportDependency is the engine-version-dependent trailing
	// marker field of 4.26-era export records.
	FirstExportDependency int32
}

// resolveExportClass maps a negative class index to the object name of
// import record -index-1. Non-negative indices point at other exports,
// which table assets never use, so they yield an empty class name.
func resolveExportClass(classIndex int64, imports []ImportRecord) string {
	if classIndex >= 0 {
		return ""
	}
	impIdx := -classIndex - 1
	if impIdx < int64(len(imports)) {
		return imports[impIdx].ObjectName
	}
	return ""
}

// readExportTable reads the declared number of export records, resolving
// object and class names as it goes. On truncation the records decoded so
// far are returned with the error.
func readExportTable(c *Cursor, h *PackageHeader, names NameTable, imports []ImportRecord) ([]ExportRecord, error) {
	if err := c.Seek(int(h.ExportOffset)); err != nil {
		return nil, err
	}
	exports := make([]ExportRecord, 0, h.ExportCount)
	for i := uint32(0); i < h.ExportCount; i++ {
		rec, err := readExportRecord(c, names)
		if err != nil {
			return exports, fmt.Errorf("export %d of %d: %w", i, h.ExportCount, err)
		}
		rec.ClassName = resolveExportClass(rec.ClassIndex, imports)
		exports = append(exports, rec)
	}
	return exports, nil
}

func readExportRecord(c *Cursor, names NameTable) (ExportRecord, error) {
	var rec ExportRecord
	var err error
	var objectName int64

	if rec.ClassIndex, err = c.ReadInt64(); err != nil {
		return rec, err
	}
	if rec.SuperIndex, err = c.ReadInt64(); err != nil {
		return rec, err
	}
	if rec.TemplateIndex, err = c.ReadInt32(); err != nil {
		return rec, err
	}
	if rec.OuterIndex, err = c.ReadInt32(); err != nil {
		return rec, err
	}
	if objectName, err = c.ReadInt64(); err != nil {
		return rec, err
	}
	if rec.ObjectFlags, err = c.ReadUint32(); err != nil {
		return rec, err
	}
	if rec.SerialSize, err = c.ReadInt64(); err != nil {
		return rec, err
	}
	if rec.SerialOffset, err = c.ReadInt64(); err != nil {
		return rec, err
	}
	if rec.ForcedExport, err = c.ReadInt32(); err != nil {
		return rec, err
	}
	if rec.NotForClient, err = c.ReadInt32(); err != nil {
		return rec, err
	}
	if rec.NotForServer, err = c.ReadInt32(); err != nil {
		return rec, err
	}
	if rec.PackageGUID, err = c.ReadGUID(); err != nil {
		return rec, err
	}
	if rec.PackageFlags, err = c.ReadUint32(); err != nil {
		return rec, err
	}
	if rec.NotAlwaysLoaded, err = c.ReadInt32(); err != nil {
		return rec, err
	}
	if rec.IsAsset, err = c.ReadInt32(); err != nil {
		return rec, err
	}
	if rec.FirstExportDependency, err = c.ReadInt32(); err != nil {
		return rec, err
	}

	rec.ObjectName = names.Resolve(fnameFromPacked(objectName))
	return rec, nil
}
