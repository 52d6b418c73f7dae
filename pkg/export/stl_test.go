package export

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/burl/pkg/mesh"
	"github.com/chazu/burl/pkg/topo"
)

func TestWriteSTL(t *testing.T) {
	m := mesh.FromSolid(topo.MakeBox(2, 2, 2))
	var buf bytes.Buffer

	require.NoError(t, WriteSTL(&buf, m, "box"))

	// 80-byte header, uint32 count, 50 bytes per triangle.
	wantSize := 84 + 50*m.TriangleCount()
	assert.Equal(t, wantSize, buf.Len())

	data := buf.Bytes()
	assert.Equal(t, byte('b'), data[0])
	count := binary.LittleEndian.Uint32(data[80:84])
	assert.Equal(t, uint32(m.TriangleCount()), count)

	// First record: normal then first vertex, little-endian float32s.
	first := data[84:]
	n := m.Normals[m.Triangles[0][0]]
	assert.Equal(t, float32(n.X), float32FromLE(first[0:4]))
	assert.Equal(t, float32(n.Y), float32FromLE(first[4:8]))
	assert.Equal(t, float32(n.Z), float32FromLE(first[8:12]))
	v := m.Vertices[m.Triangles[0][0]]
	assert.Equal(t, float32(v.X), float32FromLE(first[12:16]))

	// Attribute word is zero.
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(first[48:50]))
}

func float32FromLE(b []byte) float32 {
	var f float32
	_ = binary.Read(bytes.NewReader(b), binary.LittleEndian, &f)
	return f
}

func TestWriteSTLEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, &mesh.TriangleMesh{}, "empty"))
	assert.Equal(t, 84, buf.Len())
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf.Bytes()[80:84]))
}

func TestWriteSTLLongName(t *testing.T) {
	var buf bytes.Buffer
	name := strings.Repeat("x", 200)
	require.NoError(t, WriteSTL(&buf, &mesh.TriangleMesh{}, name))
	// The name is truncated into the fixed header, never extending it.
	assert.Equal(t, 84, buf.Len())
}

func TestWriteSTLText(t *testing.T) {
	m := mesh.FromSolid(topo.MakeBox(1, 1, 1))
	var buf bytes.Buffer

	require.NoError(t, WriteSTLText(&buf, m, "part"))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "solid part\n"))
	assert.True(t, strings.HasSuffix(out, "endsolid part\n"))
	assert.Equal(t, m.TriangleCount(), strings.Count(out, "facet normal"))
	assert.Equal(t, m.TriangleCount(), strings.Count(out, "endfacet"))
	assert.Equal(t, m.TriangleCount()*3, strings.Count(out, "vertex "))
}

func TestWriteSTLFailingWriter(t *testing.T) {
	m := mesh.FromSolid(topo.MakeBox(1, 1, 1))
	err := WriteSTL(failWriter{}, m, "box")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stl header")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
