package mesh

import (
	"fmt"

	"github.com/deadsy/sdfx/render"

	"github.com/mtarnawa/sdfray/pkg/scene"
)

// DefaultCells controls marching cubes tessellation resolution along the
// longest axis of the bounding box.
const DefaultCells = 200

// ToMesh tessellates the scene's composite surface with marching cubes.
// A cells value of zero or less selects DefaultCells.
func ToMesh(s *scene.Scene, cells int) (*Mesh, error) {
	if errs := s.Validate(); scene.HasBlockingErrors(errs) {
		return nil, fmt.Errorf("mesh: scene is not renderable: %v", errs)
	}
	if cells <= 0 {
		cells = DefaultCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(SDF3(s), renderer)

	numVerts := len(triangles) * 3
	m := &Mesh{
		Vertices: make([]float32, 0, numVerts*3),
		Normals:  make([]float32, 0, numVerts*3),
		Indices:  make([]uint32, 0, numVerts),
		Name:     s.Name,
	}

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, nx, ny, nz)
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}
	return m, nil
}

// ToSTL tessellates the scene and writes the triangles to an STL file.
func ToSTL(s *scene.Scene, cells int, path string) error {
	if errs := s.Validate(); scene.HasBlockingErrors(errs) {
		return fmt.Errorf("stl: scene is not renderable: %v", errs)
	}
	if cells <= 0 {
		cells = DefaultCells
	}
	render.ToSTL(SDF3(s), path, render.NewMarchingCubesUniform(cells))
	return nil
}
