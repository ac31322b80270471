package uasset

import "fmt"

// NameEntry is one slot of the package name table: the display string and
// the case-insensitive hash stored alongside it.
type NameEntry struct {
	Name string
	Hash uint32
}

// NameTable is the ordered string pool every other table addresses by
// integer index. It is append-only during decode and read-only afterwards.
type NameTable []NameEntry

// Strings returns the display strings in table order.
func (t NameTable) Strings() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Name
	}
	return out
}

// FName is a compact name reference: an index into the name table plus an
// instance number. Number 0 means the bare string; Number N>0 means the
// string with "_{N-1}" appended.
type FName struct {
	Index  int32
	Number int32
}

// fnameFromPacked unpacks the 64-bit form used by import and export
// records: index in the low 32 bits, instance number in the high 32.
func fnameFromPacked(v int64) FName {
	return FName{Index: int32(uint32(v)), Number: int32(uint32(v >> 32))}
}

// Resolve renders an FName against the table. An out-of-range index
// degrades to a "<name_N>" placeholder instead of failing.
func (t NameTable) Resolve(n FName) string {
	if n.Index < 0 || int(n.Index) >= len(t) {
		return fmt.Sprintf("<name_%d>", n.Index)
	}
	name := t[n.Index].Name
	if n.Number > 0 {
		return fmt.Sprintf("%s_%d", name, n.Number-1)
	}
	return name
}

// readFName reads the 8-byte on-disk FName form (index, number).
func readFName(c *Cursor) (FName, error) {
	idx, err := c.ReadInt32()
	if err != nil {
		return FName{}, err
	}
	num, err := c.ReadInt32()
	if err != nil {
		return FName{}, err
	}
	return FName{Index: idx, Number: num}, nil
}

// readNameTable reads the declared number of (FString, hash) pairs from
// the header buffer. The import-table offset bounds the loop so a corrupt
// name count cannot run into the next table. On truncation the entries
// decoded so far are returned along with the error.
func readNameTable(c *Cursor, h *PackageHeader) (NameTable, error) {
	if err := c.Seek(int(h.NameOffset)); err != nil {
		return nil, err
	}
	table := make(NameTable, 0, h.NameCount)
	for i := uint32(0); i < h.NameCount; i++ {
		if h.ImportOffset > 0 && c.Pos() >= int(h.ImportOffset) {
			break
		}
		name, err := c.ReadFString()
		if err != nil {
			return table, fmt.Errorf("name %d of %d: %w", i, h.NameCount, err)
		}
		hash, err := c.ReadUint32()
		if err != nil {
			return table, fmt.Errorf("name %d of %d: %w", i, h.NameCount, err)
		}
		table = append(table, NameEntry{Name: name, Hash: hash})
	}
	return table, nil
}
