package uasset

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArrayExactCount(t *testing.T) {
	d := NewDecoder(NameTable{{Name: "IntProperty"}})

	var buf bytes.Buffer
	writeFName(&buf, 0, 0) // inner type
	buf.WriteByte(0)       // padding
	writeI32(&buf, 3)      // element count
	writeI32(&buf, 10)
	writeI32(&buf, 20)
	writeI32(&buf, 30)

	v, err := d.DecodeValue(NewCursor(buf.Bytes()), "ArrayProperty", 0)
	require.NoError(t, err)

	arr, ok := v.(ArrayValue)
	require.True(t, ok)
	assert.Equal(t, "IntProperty", arr.InnerType)
	require.Len(t, arr.Elements, 3)
	assert.Equal(t, IntValue(10), arr.Elements[0])
	assert.Equal(t, IntValue(20), arr.Elements[1])
	assert.Equal(t, IntValue(30), arr.Elements[2])
}

func TestDecodeArrayNegativeCount(t *testing.T) {
	d := NewDecoder(NameTable{{Name: "IntProperty"}})

	var buf bytes.Buffer
	writeFName(&buf, 0, 0)
	buf.WriteByte(0)
	writeI32(&buf, -3)

	_, err := d.DecodeValue(NewCursor(buf.Bytes()), "ArrayProperty", 0)
	assert.ErrorIs(t, err, ErrUnexpectedEndOfData)
}

func TestDecodeStructSkipsHeaderPad(t *testing.T) {
	names := NameTable{{Name: "Vector"}, {Name: "X"}, {Name: "IntProperty"}, {Name: "None"}}
	d := NewDecoder(names)

	var buf bytes.Buffer
	writeFName(&buf, 0, 0) // struct type
	for i := 0; i < structHeaderPad; i++ {
		buf.WriteByte(0xCC) // GUID + flag byte, content irrelevant
	}
	writeFName(&buf, 1, 0) // field name X
	writeFName(&buf, 2, 0) // IntProperty
	writeI64(&buf, 4)
	writeI32(&buf, 0)
	writeI32(&buf, 42)
	writeFName(&buf, 3, 0) // None terminator

	c := NewCursor(buf.Bytes())
	v, err := d.DecodeValue(c, "StructProperty", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Remaining())

	st, ok := v.(StructValue)
	require.True(t, ok)
	assert.Equal(t, "Vector", st.StructType)
	require.Len(t, st.Fields, 1)
	assert.Equal(t, "X", st.Fields[0].Name)
	assert.Equal(t, IntValue(42), st.Fields[0].Value)
}

func TestDecodeBytePlain(t *testing.T) {
	d := NewDecoder(NameTable{{Name: "None"}})

	var buf bytes.Buffer
	writeFName(&buf, 0, 0) // enclosing enum: None sentinel
	buf.WriteByte(7)

	v, err := d.DecodeValue(NewCursor(buf.Bytes()), "ByteProperty", 0)
	require.NoError(t, err)
	assert.Equal(t, ByteValue(7), v)
}

func TestDecodeByteEnum(t *testing.T) {
	d := NewDecoder(NameTable{{Name: "EQuality"}, {Name: "High"}})

	var buf bytes.Buffer
	writeFName(&buf, 0, 0)
	writeFName(&buf, 1, 0)

	v, err := d.DecodeValue(NewCursor(buf.Bytes()), "ByteProperty", 0)
	require.NoError(t, err)

	enum, ok := v.(EnumValue)
	require.True(t, ok)
	assert.Equal(t, "EQuality::High", enum.String())
}

func TestDecodeUnknownTypeSkipsBySize(t *testing.T) {
	d := NewDecoder(NameTable{})

	data := []byte{1, 2, 3, 4, 5, 0xFF, 0xFF}
	c := NewCursor(data)

	v, err := d.DecodeValue(c, "MapProperty", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Pos(), "must skip exactly the declared size")

	op, ok := v.(OpaqueValue)
	require.True(t, ok)
	assert.Equal(t, "MapProperty", op.Tag)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, op.Raw)
}

func TestPropertyListCorruptDeclaredSize(t *testing.T) {
	names := NameTable{{Name: "P"}, {Name: "MapProperty"}}
	d := NewDecoder(names)

	var buf bytes.Buffer
	writeFName(&buf, 0, 0)
	writeFName(&buf, 1, 0)
	writeI64(&buf, math.MaxInt64) // corrupt size on an unknown type
	writeI32(&buf, 0)

	props, err := d.readPropertyList(NewCursor(buf.Bytes()))
	assert.ErrorIs(t, err, ErrUnexpectedEndOfData)
	assert.Empty(t, props)
}

func TestPropertyListStopsAtNone(t *testing.T) {
	names := NameTable{{Name: "A"}, {Name: "IntProperty"}, {Name: "None"}, {Name: "B"}}
	d := NewDecoder(names)

	var buf bytes.Buffer
	for _, nameIdx := range []int32{0, 3} { // A, then B
		writeFName(&buf, nameIdx, 0)
		writeFName(&buf, 1, 0)
		writeI64(&buf, 4)
		writeI32(&buf, 0)
		writeI32(&buf, 99)
	}
	writeFName(&buf, 2, 0) // None
	trailing := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	buf.Write(trailing)

	c := NewCursor(buf.Bytes())
	props, err := d.readPropertyList(c)
	require.NoError(t, err)
	require.Len(t, props, 2, "decoding stops at None regardless of trailing bytes")
	assert.Equal(t, "A", props[0].Name)
	assert.Equal(t, "B", props[1].Name)
	assert.Equal(t, len(trailing), c.Remaining())
}

func TestPropertyListIterationCap(t *testing.T) {
	names := NameTable{{Name: "P"}, {Name: "IntProperty"}}
	d := NewDecoder(names)

	var buf bytes.Buffer
	for i := 0; i < maxPropertiesPerList+10; i++ {
		writeFName(&buf, 0, 0)
		writeFName(&buf, 1, 0)
		writeI64(&buf, 4)
		writeI32(&buf, int32(i))
		writeI32(&buf, 1)
	}

	props, err := d.readPropertyList(NewCursor(buf.Bytes()))
	assert.ErrorIs(t, err, ErrIterationCap)
	assert.Len(t, props, maxPropertiesPerList)
}

func TestDuplicateNamesKeptByArrayIndex(t *testing.T) {
	names := NameTable{{Name: "Dup"}, {Name: "IntProperty"}, {Name: "None"}}
	d := NewDecoder(names)

	var buf bytes.Buffer
	for i := int32(0); i < 2; i++ {
		writeFName(&buf, 0, 0)
		writeFName(&buf, 1, 0)
		writeI64(&buf, 4)
		writeI32(&buf, i)
		writeI32(&buf, 5+i)
	}
	writeFName(&buf, 2, 0)

	props, err := d.readPropertyList(NewCursor(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "Dup", props[0].jsonKey())
	assert.Equal(t, "Dup[1]", props[1].jsonKey())
}
