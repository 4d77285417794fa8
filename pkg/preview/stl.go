package preview

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WriteSTL writes the mesh as binary STL.
func WriteSTL(w io.Writer, m *Mesh) error {
	var header [80]byte
	copy(header[:], "galemesh refinement preview")
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("preview: stl header: %w", err)
	}

	count := uint32(m.TriangleCount())
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("preview: stl count: %w", err)
	}

	for t := 0; t < int(count); t++ {
		// Normal, then the three vertices, then the attribute word.
		base := t * 3
		rec := make([]float32, 0, 12)
		rec = append(rec, m.Normals[base*3], m.Normals[base*3+1], m.Normals[base*3+2])
		for j := 0; j < 3; j++ {
			vi := int(m.Indices[base+j]) * 3
			rec = append(rec, m.Vertices[vi], m.Vertices[vi+1], m.Vertices[vi+2])
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("preview: stl triangle %d: %w", t, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("preview: stl triangle %d: %w", t, err)
		}
	}
	return nil
}

// SaveSTL renders the mesh to a file as binary STL.
func SaveSTL(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer f.Close()
	if err := WriteSTL(f, m); err != nil {
		return err
	}
	return f.Close()
}
