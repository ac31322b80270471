package uasset

import "fmt"

// ImportRecord is a symbolic reference to an object defined outside this
// package. The name fields are resolved against the name table at read
// time; imports never carry serialized payload.
type ImportRecord struct {
	ClassPackage string
	ClassName    string
	OuterIndex   int32
	ObjectName   string
}

// importRecordSize is the fixed on-disk layout: two packed FNames, an
// outer index, and a packed object name.
const importRecordSize = 8 + 8 + 4 + 8

// readImportTable reads the declared number of import records. The
// export-table offset bounds the loop against a corrupt count. On
// truncation the records decoded so far are returned with the error.
func readImportTable(c *Cursor, h *PackageHeader, names NameTable) ([]ImportRecord, error) {
	if err := c.Seek(int(h.ImportOffset)); err != nil {
		return nil, err
	}
	imports := make([]ImportRecord, 0, h.ImportCount)
	for i := uint32(0); i < h.ImportCount; i++ {
		if h.ExportOffset > 0 && c.Pos()+importRecordSize > int(h.ExportOffset) {
			break
		}
		classPackage, err := c.ReadInt64()
		if err != nil {
			return imports, fmt.Errorf("import %d of %d: %w", i, h.ImportCount, err)
		}
		className, err := c.ReadInt64()
		if err != nil {
			return imports, fmt.Errorf("import %d of %d: %w", i, h.ImportCount, err)
		}
		outerIndex, err := c.ReadInt32()
		if err != nil {
			return imports, fmt.Errorf("import %d of %d: %w", i, h.ImportCount, err)
		}
		objectName, err := c.ReadInt64()
		if err != nil {
			return imports, fmt.Errorf("import %d of %d: %w", i, h.ImportCount, err)
		}
		imports = append(imports, ImportRecord{
			ClassPackage: names.Resolve(fnameFromPacked(classPackage)),
			ClassName:    names.Resolve(fnameFromPacked(className)),
			OuterIndex:   outerIndex,
			ObjectName:   names.Resolve(fnameFromPacked(objectName)),
		})
	}
	return imports, nil
}
