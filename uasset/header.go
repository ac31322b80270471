package uasset

import "fmt"

// PackageFileTag is the magic value opening every cooked package header.
const PackageFileTag = 0x9E2A83C1

// PackageHeader is the decoded package summary: version numbers, the
// declared counts and offsets of the name, import and export tables, and
// assorted package metadata.
type PackageHeader struct {
	LegacyVersion       int32
	LegacyUE3Version    int32
	FileVersionUE4      int32
	FileVersionUE5      int32
	FileVersionLicensee int32
	CustomVersionCount  int32

	TotalHeaderSize uint32
	FolderName      string
	PackageFlags    uint32

	NameCount  uint32
	NameOffset uint32

	ExportCount  uint32
	ExportOffset uint32
	ImportCount  uint32
	ImportOffset uint32

	DependsOffset         uint32
	SoftPackageRefCount   uint32
	SoftPackageRefOffset  uint32
	SearchableNamesOffset int32
	ThumbnailTableOffset  uint32

	GUID            [16]byte
	GenerationCount uint32
}

// readHeader parses the package summary from the start of the header
// buffer. A wrong magic tag is the one structural (fatal) failure; any
// other short read surfaces as ErrUnexpectedEndOfData for the caller to
// record.
func readHeader(c *Cursor) (*PackageHeader, error) {
	magic, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if magic != PackageFileTag {
		return nil, &StructuralError{Magic: magic}
	}

	h := &PackageHeader{}
	if h.LegacyVersion, err = c.ReadInt32(); err != nil {
		return h, err
	}
	if h.LegacyUE3Version, err = c.ReadInt32(); err != nil {
		return h, err
	}
	if h.FileVersionUE4, err = c.ReadInt32(); err != nil {
		return h, err
	}
	if h.FileVersionUE5, err = c.ReadInt32(); err != nil {
		return h, err
	}
	if h.FileVersionLicensee, err = c.ReadInt32(); err != nil {
		return h, err
	}

	// Custom version container: 20 bytes each (GUID + version).
	if h.CustomVersionCount, err = c.ReadInt32(); err != nil {
		return h, err
	}
	if h.CustomVersionCount < 0 {
		return h, fmt.Errorf("custom version count %d: %w", h.CustomVersionCount, ErrUnexpectedEndOfData)
	}
	if err = c.Skip(int(h.CustomVersionCount) * 20); err != nil {
		return h, err
	}

	if h.TotalHeaderSize, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.FolderName, err = c.ReadFString(); err != nil {
		return h, err
	}
	if h.PackageFlags, err = c.ReadUint32(); err != nil {
		return h, err
	}

	if h.NameCount, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.NameOffset, err = c.ReadUint32(); err != nil {
		return h, err
	}

	// Soft object paths, then gatherable text data (count + offset each).
	if err = c.Skip(16); err != nil {
		return h, err
	}

	if h.ExportCount, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.ExportOffset, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.ImportCount, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.ImportOffset, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.DependsOffset, err = c.ReadUint32(); err != nil {
		return h, err
	}

	if h.SoftPackageRefCount, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.SoftPackageRefOffset, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.SearchableNamesOffset, err = c.ReadInt32(); err != nil {
		return h, err
	}
	if h.ThumbnailTableOffset, err = c.ReadUint32(); err != nil {
		return h, err
	}

	if h.GUID, err = c.ReadGUID(); err != nil {
		return h, err
	}

	// Generations array: export count + name count per entry. The tables
	// are reached by their declared offsets, so nothing after this point
	// needs to be consumed.
	if h.GenerationCount, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if err = c.Skip(int(h.GenerationCount) * 8); err != nil {
		return h, err
	}

	return h, nil
}
