// Package export writes kernel output to interchange formats: triangle
// meshes to STL, sketches to SVG. Exporters read the kernel's data
// structures and never write back into them.
package export

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chazu/burl/pkg/mesh"
)

// stlHeaderSize is the fixed binary STL header length.
const stlHeaderSize = 80

// WriteSTL writes the mesh in binary STL: an 80-byte header, a uint32
// triangle count, then per triangle a normal, three vertices (all
// float32, little-endian), and a zero attribute word.
func WriteSTL(w io.Writer, m *mesh.TriangleMesh, name string) error {
	var header [stlHeaderSize]byte
	copy(header[:], name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("stl triangle count: %w", err)
	}

	for ti, tri := range m.Triangles {
		record := make([]float32, 0, 12)
		n := m.Normals[tri[0]]
		record = append(record, float32(n.X), float32(n.Y), float32(n.Z))
		for _, vi := range tri {
			v := m.Vertices[vi]
			record = append(record, float32(v.X), float32(v.Y), float32(v.Z))
		}
		if err := binary.Write(w, binary.LittleEndian, record); err != nil {
			return fmt.Errorf("stl triangle %d: %w", ti, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("stl triangle %d attribute: %w", ti, err)
		}
	}
	return nil
}

// WriteSTLText writes the mesh in ASCII STL.
func WriteSTLText(w io.Writer, m *mesh.TriangleMesh, name string) error {
	if _, err := fmt.Fprintf(w, "solid %s\n", name); err != nil {
		return err
	}
	for _, tri := range m.Triangles {
		n := m.Normals[tri[0]]
		if _, err := fmt.Fprintf(w, "facet normal %g %g %g\n  outer loop\n", n.X, n.Y, n.Z); err != nil {
			return err
		}
		for _, vi := range tri {
			v := m.Vertices[vi]
			if _, err := fmt.Fprintf(w, "    vertex %g %g %g\n", v.X, v.Y, v.Z); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "  endloop\nendfacet\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "endsolid %s\n", name)
	return err
}
