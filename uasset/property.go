package uasset

import (
	"encoding/hex"
	"fmt"
)

// NoneName is the sentinel terminating property lists and marking a
// ByteProperty with no enclosing enum.
const NoneName = "None"

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindStr
	KindName
	KindByte
	KindEnum
	KindArray
	KindStruct
	KindObjectRef
	KindOpaque
)

// Value is one decoded property value. It is a closed sum: exactly one
// concrete type per Kind, including Opaque for type tags the decoder does
// not know.
type Value interface {
	Kind() Kind

	// jsonValue returns the generic form used when marshaling a decoded
	// tree, mirroring the shape of the JSON exporter output.
	jsonValue() any
}

type IntValue int32

func (IntValue) Kind() Kind       { return KindInt }
func (v IntValue) jsonValue() any { return int32(v) }

type FloatValue float32

func (FloatValue) Kind() Kind       { return KindFloat }
func (v FloatValue) jsonValue() any { return float32(v) }

type BoolValue bool

func (BoolValue) Kind() Kind       { return KindBool }
func (v BoolValue) jsonValue() any { return bool(v) }

type StrValue string

func (StrValue) Kind() Kind       { return KindStr }
func (v StrValue) jsonValue() any { return string(v) }

// NameValue holds an FName already resolved against the name table.
type NameValue string

func (NameValue) Kind() Kind       { return KindName }
func (v NameValue) jsonValue() any { return string(v) }

type ByteValue uint8

func (ByteValue) Kind() Kind       { return KindByte }
func (v ByteValue) jsonValue() any { return uint8(v) }

// EnumValue is an enum member qualified by its enum type.
type EnumValue struct {
	Type   string
	Member string
}

func (EnumValue) Kind() Kind { return KindEnum }
func (v EnumValue) String() string {
	return v.Type + "::" + v.Member
}
func (v EnumValue) jsonValue() any { return v.String() }

// ArrayValue holds exactly the declared number of elements, in source
// order, all decoded with the inner type tag.
type ArrayValue struct {
	InnerType string
	Elements  []Value
}

func (ArrayValue) Kind() Kind { return KindArray }
func (v ArrayValue) jsonValue() any {
	out := make([]any, len(v.Elements))
	for i, e := range v.Elements {
		out[i] = e.jsonValue()
	}
	return out
}

// StructValue is a named sub-tree shaped like a row: the struct type plus
// its own terminated property list.
type StructValue struct {
	StructType string
	Fields     []Property
}

func (StructValue) Kind() Kind { return KindStruct }
func (v StructValue) jsonValue() any {
	out := map[string]any{"_struct_type": v.StructType}
	for _, f := range v.Fields {
		out[f.jsonKey()] = f.Value.jsonValue()
	}
	return out
}

// ObjectRefValue is an opaque object index. Resolving it against the
// import and export tables is the caller's concern.
type ObjectRefValue int32

func (ObjectRefValue) Kind() Kind { return KindObjectRef }
func (v ObjectRefValue) jsonValue() any {
	return fmt.Sprintf("<object_%d>", int32(v))
}

// OpaqueValue carries the raw bytes of a property whose type tag the
// decoder does not know. The declared size makes the skip exact, so
// unknown types degrade instead of derailing the cursor.
type OpaqueValue struct {
	Tag string
	Raw []byte
}

func (OpaqueValue) Kind() Kind { return KindOpaque }
func (v OpaqueValue) jsonValue() any {
	preview := v.Raw
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return fmt.Sprintf("<%s:%s>", v.Tag, hex.EncodeToString(preview))
}

// Property is one typed field of a row or struct.
type Property struct {
	Name       string
	Type       string
	Size       int64
	ArrayIndex int32
	Value      Value
}

// jsonKey renders duplicate names apart by their array index.
func (p Property) jsonKey() string {
	if p.ArrayIndex > 0 {
		return fmt.Sprintf("%s[%d]", p.Name, p.ArrayIndex)
	}
	return p.Name
}

// valueDecoder decodes one value of a fixed type tag. size is the
// declared byte size from the property header (zero for array elements).
type valueDecoder func(d *Decoder, c *Cursor, size int64) (Value, error)

// Decoder decodes property values against a name table. The dispatch
// table is built once at construction and never mutated, so a Decoder is
// safe to reuse across rows.
type Decoder struct {
	names    NameTable
	dispatch map[string]valueDecoder
}

// NewDecoder returns a Decoder for packages using the given name table.
func NewDecoder(names NameTable) *Decoder {
	return &Decoder{
		names: names,
		dispatch: map[string]valueDecoder{
			"IntProperty":        decodeIntValue,
			"FloatProperty":      decodeFloatValue,
			"BoolProperty":       decodeBoolValue,
			"StrProperty":        decodeStrValue,
			"NameProperty":       decodeNameValue,
			"ByteProperty":       decodeByteValue,
			"EnumProperty":       decodeEnumValue,
			"ArrayProperty":      decodeArrayValue,
			"StructProperty":     decodeStructValue,
			"ObjectProperty":     decodeObjectRefValue,
			"SoftObjectProperty": decodeObjectRefValue,
		},
	}
}

// DecodeValue decodes one value by its type tag. Unknown tags with a
// declared size skip exactly that many bytes and come back as Opaque.
func (d *Decoder) DecodeValue(c *Cursor, typeTag string, size int64) (Value, error) {
	if fn, ok := d.dispatch[typeTag]; ok {
		return fn(d, c, size)
	}
	return decodeOpaqueValue(c, typeTag, size)
}

func (d *Decoder) resolveFName(c *Cursor) (string, error) {
	n, err := readFName(c)
	if err != nil {
		return "", err
	}
	return d.names.Resolve(n), nil
}

func decodeIntValue(_ *Decoder, c *Cursor, _ int64) (Value, error) {
	v, err := c.ReadInt32()
	return IntValue(v), err
}

func decodeFloatValue(_ *Decoder, c *Cursor, _ int64) (Value, error) {
	v, err := c.ReadFloat32()
	return FloatValue(v), err
}

func decodeBoolValue(_ *Decoder, c *Cursor, _ int64) (Value, error) {
	v, err := c.ReadUint8()
	return BoolValue(v != 0), err
}

func decodeStrValue(_ *Decoder, c *Cursor, _ int64) (Value, error) {
	v, err := c.ReadFString()
	return StrValue(v), err
}

func decodeNameValue(d *Decoder, c *Cursor, _ int64) (Value, error) {
	v, err := d.resolveFName(c)
	return NameValue(v), err
}

// decodeByteValue handles the two forms of ByteProperty: a plain byte
// when the enclosing enum name is the None sentinel, otherwise an enum
// member.
func decodeByteValue(d *Decoder, c *Cursor, _ int64) (Value, error) {
	enumName, err := d.resolveFName(c)
	if err != nil {
		return nil, err
	}
	if enumName == NoneName {
		v, err := c.ReadUint8()
		return ByteValue(v), err
	}
	member, err := d.resolveFName(c)
	if err != nil {
		return nil, err
	}
	return EnumValue{Type: enumName, Member: member}, nil
}

func decodeEnumValue(d *Decoder, c *Cursor, _ int64) (Value, error) {
	enumType, err := d.resolveFName(c)
	if err != nil {
		return nil, err
	}
	member, err := d.resolveFName(c)
	if err != nil {
		return nil, err
	}
	return EnumValue{Type: enumType, Member: member}, nil
}

// decodeArrayValue reads the inner type tag, one padding byte and the
// element count, then decodes exactly count elements.
func decodeArrayValue(d *Decoder, c *Cursor, _ int64) (Value, error) {
	innerType, err := d.resolveFName(c)
	if err != nil {
		return nil, err
	}
	if err := c.Skip(1); err != nil {
		return nil, err
	}
	count, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("array count %d: %w", count, ErrUnexpectedEndOfData)
	}
	arr := ArrayValue{InnerType: innerType, Elements: make([]Value, 0, count)}
	for i := int32(0); i < count; i++ {
		elem, err := d.DecodeValue(c, innerType, 0)
		if err != nil {
			return arr, fmt.Errorf("array element %d of %d: %w", i, count, err)
		}
		arr.Elements = append(arr.Elements, elem)
	}
	return arr, nil
}

// decodeStructValue reads the struct type name, skips the 17-byte region
// (struct GUID plus flag byte), then recurses into the generic
// property-list loop for the struct's own fields.
func decodeStructValue(d *Decoder, c *Cursor, _ int64) (Value, error) {
	structType, err := d.resolveFName(c)
	if err != nil {
		return nil, err
	}
	if err := c.Skip(structHeaderPad); err != nil {
		return nil, err
	}
	fields, err := d.readPropertyList(c)
	return StructValue{StructType: structType, Fields: fields}, err
}

func decodeObjectRefValue(_ *Decoder, c *Cursor, _ int64) (Value, error) {
	v, err := c.ReadInt32()
	return ObjectRefValue(v), err
}

func decodeOpaqueValue(c *Cursor, typeTag string, size int64) (Value, error) {
	if size <= 0 {
		return OpaqueValue{Tag: typeTag}, nil
	}
	b, err := c.ReadBytes(int(size))
	if err != nil {
		return nil, err
	}
	raw := make([]byte, len(b))
	copy(raw, b)
	return OpaqueValue{Tag: typeTag, Raw: raw}, nil
}
