package uasset

import (
	"bytes"
	"encoding/binary"
)

// Test fixtures are hand-built buffers following the cooked package
// layout, assembled with the little helpers below.

func writeU32(buf *bytes.Buffer, v uint32) { binary.Write(buf, binary.LittleEndian, v) }
func writeI32(buf *bytes.Buffer, v int32)  { binary.Write(buf, binary.LittleEndian, v) }
func writeI64(buf *bytes.Buffer, v int64)  { binary.Write(buf, binary.LittleEndian, v) }
func writeF32(buf *bytes.Buffer, v float32) {
	binary.Write(buf, binary.LittleEndian, v)
}

// writeFString writes a positive-length UTF-8 FString with its NUL.
func writeFString(buf *bytes.Buffer, s string) {
	writeI32(buf, int32(len(s)+1))
	buf.WriteString(s)
	buf.WriteByte(0)
}

// writeFName writes the 8-byte on-disk FName form.
func writeFName(buf *bytes.Buffer, index, number int32) {
	writeI32(buf, index)
	writeI32(buf, number)
}

// writeNameEntry writes one name-table slot (FString + hash).
func writeNameEntry(buf *bytes.Buffer, s string) {
	writeFString(buf, s)
	writeU32(buf, 0) // hash, unchecked by the decoder
}

type testImport struct {
	classPackage int64
	className    int64
	outerIndex   int32
	objectName   int64
}

func writeImportRecord(buf *bytes.Buffer, imp testImport) {
	writeI64(buf, imp.classPackage)
	writeI64(buf, imp.className)
	writeI32(buf, imp.outerIndex)
	writeI64(buf, imp.objectName)
}

type testExport struct {
	classIndex   int64
	objectName   int64
	serialSize   int64
	serialOffset int64
}

func writeExportRecord(buf *bytes.Buffer, exp testExport) {
	writeI64(buf, exp.classIndex)
	writeI64(buf, 0) // super index
	writeI32(buf, 0) // template index
	writeI32(buf, 0) // outer index
	writeI64(buf, exp.objectName)
	writeU32(buf, 0) // object flags
	writeI64(buf, exp.serialSize)
	writeI64(buf, exp.serialOffset)
	writeI32(buf, 0) // forced export
	writeI32(buf, 0) // not for client
	writeI32(buf, 0) // not for server
	buf.Write(make([]byte, 16)) // package GUID
	writeU32(buf, 0)            // package flags
	writeI32(buf, 0)            // not always loaded
	writeI32(buf, 1)            // is asset
	writeI32(buf, 0)            // first export dependency
}

// headerFixedSize is the byte length of the summary written by
// buildPackage (empty folder name, no custom versions, no generations).
const headerFixedSize = 120

// buildPackage assembles a header buffer with the given name, import and
// export tables.
func buildPackage(names []string, imports []testImport, exports []testExport) []byte {
	var namesBlob, importsBlob, exportsBlob bytes.Buffer
	for _, n := range names {
		writeNameEntry(&namesBlob, n)
	}
	for _, imp := range imports {
		writeImportRecord(&importsBlob, imp)
	}
	for _, exp := range exports {
		writeExportRecord(&exportsBlob, exp)
	}

	nameOffset := uint32(headerFixedSize)
	importOffset := nameOffset + uint32(namesBlob.Len())
	exportOffset := importOffset + uint32(importsBlob.Len())
	totalSize := exportOffset + uint32(exportsBlob.Len())

	var buf bytes.Buffer
	writeU32(&buf, PackageFileTag)
	writeI32(&buf, -7)  // legacy version
	writeI32(&buf, 864) // legacy UE3 version
	writeI32(&buf, 522) // file version UE4
	writeI32(&buf, 0)   // file version UE5
	writeI32(&buf, 0)   // licensee version
	writeI32(&buf, 0)   // custom version count
	writeU32(&buf, totalSize)
	writeI32(&buf, 0) // folder name: zero-length FString
	writeU32(&buf, 0) // package flags

	writeU32(&buf, uint32(len(names)))
	writeU32(&buf, nameOffset)
	buf.Write(make([]byte, 16)) // soft object paths + gatherable text

	writeU32(&buf, uint32(len(exports)))
	writeU32(&buf, exportOffset)
	writeU32(&buf, uint32(len(imports)))
	writeU32(&buf, importOffset)
	writeU32(&buf, 0) // depends offset

	writeU32(&buf, 0) // soft package ref count
	writeU32(&buf, 0) // soft package ref offset
	writeI32(&buf, 0) // searchable names offset
	writeU32(&buf, 0) // thumbnail table offset

	buf.Write(make([]byte, 16)) // GUID
	writeU32(&buf, 0)           // generation count

	if buf.Len() != headerFixedSize {
		panic("test header layout drifted")
	}

	buf.Write(namesBlob.Bytes())
	buf.Write(importsBlob.Bytes())
	buf.Write(exportsBlob.Bytes())
	return buf.Bytes()
}
