package uasset

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// structHeaderPad is the fixed region between a struct property's type
// name and its first field: the struct GUID plus one flag byte.
const structHeaderPad = 17

// Safety caps against corrupt data driving the decode loops unbounded.
const (
	maxPropertiesPerList = 1024
	maxRowCount          = 65536
)

// Row is one record of a tabular asset: a name key plus its properties in
// declaration order. Duplicate property names are legal and told apart by
// their array indices. Partial is set when the row's data ran out before
// the None terminator.
type Row struct {
	Name       string
	Properties []Property
	Partial    bool
}

// readPropertyList reads property headers and values until the None
// terminator (or an empty/unresolvable name), which is consumed but not
// stored. On a short read it returns the properties decoded so far along
// with the error, so the caller can mark the enclosing row partial.
func (d *Decoder) readPropertyList(c *Cursor) ([]Property, error) {
	var props []Property
	for i := 0; i < maxPropertiesPerList; i++ {
		name, err := d.resolveFName(c)
		if err != nil {
			return props, err
		}
		if name == NoneName || name == "" || strings.HasPrefix(name, "<") {
			return props, nil
		}
		typeTag, err := d.resolveFName(c)
		if err != nil {
			return props, err
		}
		size, err := c.ReadInt64()
		if err != nil {
			return props, err
		}
		arrayIndex, err := c.ReadInt32()
		if err != nil {
			return props, err
		}
		value, err := d.DecodeValue(c, typeTag, size)
		if value != nil {
			props = append(props, Property{
				Name:       name,
				Type:       typeTag,
				Size:       size,
				ArrayIndex: arrayIndex,
				Value:      value,
			})
		}
		if err != nil {
			return props, err
		}
	}
	return props, fmt.Errorf("property list: %w", ErrIterationCap)
}

// DecodeTable decodes the row block of the export-data buffer: leading
// zero-padding words, a declared row count, then one row-key FName and
// one property list per row. Truncation marks the current row partial and
// stops the loop; the rows decoded so far are always returned.
func (d *Decoder) DecodeTable(data []byte) ([]Row, error) {
	c := NewCursor(data)

	// Cooked table payloads often lead with padding words.
	for c.Remaining() >= 8 && binary.LittleEndian.Uint32(data[c.Pos():]) == 0 {
		if err := c.Skip(4); err != nil {
			break
		}
	}

	rowCount, err := c.ReadInt32()
	if err != nil || rowCount <= 0 {
		return nil, nil
	}

	var capErr error
	count := int(rowCount)
	if count > maxRowCount {
		count = maxRowCount
		capErr = fmt.Errorf("declared row count %d: %w", rowCount, ErrIterationCap)
	}

	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		if c.Remaining() < 8 {
			break
		}
		name, err := d.resolveFName(c)
		if err != nil {
			return rows, fmt.Errorf("row %d key: %w", i, err)
		}
		props, err := d.readPropertyList(c)
		row := Row{Name: name, Properties: props}
		if err != nil {
			row.Partial = true
			rows = append(rows, row)
			return rows, fmt.Errorf("row %d (%s): %w", i, name, err)
		}
		rows = append(rows, row)
	}
	if capErr != nil {
		return rows, capErr
	}
	return rows, nil
}
