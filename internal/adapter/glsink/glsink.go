// Package glsink implements render.Sink over a real OpenGL 4.1 core
// context, uploading each SectionMesh to its own VAO/VBO/EBO triple.
package glsink

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"voxelstream/internal/meshing"
	"voxelstream/internal/render"
	"voxelstream/internal/voxel"
)

// entity is one spawned section: the GL objects backing its geometry plus
// the transform it was placed at.
type entity struct {
	vao, vbo, ebo uint32
	indexCount    int32
	material      render.MaterialHandle
	transform     mgl32.Mat4
}

// meshAsset is a registered-but-not-yet-spawned SectionMesh, kept so
// Spawn can build a fresh VAO from it each time the asset is placed.
type meshAsset struct {
	mesh *meshing.SectionMesh
}

// Sink is a render.Sink backed by a live GL context. The caller must have
// already made a GL context current (via glfw.Window.MakeContextCurrent
// and gl.Init) before constructing one.
type Sink struct {
	atlas *atlasTexture

	meshes    map[render.MeshHandle]*meshAsset
	materials map[render.MaterialHandle]mgl32.Vec3
	entities  map[render.Handle]*entity
}

// New returns a Sink bound to the current GL context.
func New() (*Sink, error) {
	atlas, err := newAtlasTexture()
	if err != nil {
		return nil, err
	}
	return &Sink{
		atlas:     atlas,
		meshes:    make(map[render.MeshHandle]*meshAsset),
		materials: make(map[render.MaterialHandle]mgl32.Vec3),
		entities:  make(map[render.Handle]*entity),
	}, nil
}

// AddMeshAsset implements render.Sink.
func (s *Sink) AddMeshAsset(m *meshing.SectionMesh) render.MeshHandle {
	h := uuid.New()
	s.meshes[h] = &meshAsset{mesh: m}
	return h
}

// AddMaterialAsset implements render.Sink. The color is baked into a
// checkerboard swatch the next time it backs a Spawn call.
func (s *Sink) AddMaterialAsset(color mgl32.Vec3) render.MaterialHandle {
	h := uuid.New()
	s.materials[h] = color
	return h
}

// Spawn implements render.Sink: it uploads the mesh's vertex data into a
// fresh VAO/VBO/EBO triple and paints the material's checkerboard swatch
// into the shared atlas texture.
func (s *Sink) Spawn(meshHandle render.MeshHandle, materialHandle render.MaterialHandle, transform mgl32.Mat4, tag voxel.ChunkPos) render.Handle {
	asset, ok := s.meshes[meshHandle]
	if !ok || asset.mesh.IsEmpty() {
		return uuid.New()
	}
	color := s.materials[materialHandle]
	s.atlas.bindSwatch(color)

	verts := interleave(asset.mesh)

	var vao, vbo, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	const stride = 6 * 4 // position (vec3) + normal (vec3), float32
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(asset.mesh.Indices)*4, gl.Ptr(asset.mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	h := uuid.New()
	s.entities[h] = &entity{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(asset.mesh.Indices)),
		material:   materialHandle,
		transform:  transform,
	}
	return h
}

// Despawn implements render.Sink: it deletes the entity's GL objects.
func (s *Sink) Despawn(h render.Handle) {
	e, ok := s.entities[h]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &e.vao)
	gl.DeleteBuffers(1, &e.vbo)
	gl.DeleteBuffers(1, &e.ebo)
	delete(s.entities, h)
}

// Draw issues one draw call per live entity. It is not part of
// render.Sink — the pipeline never calls it —
// but gives cmd/voxelstreamd something real to invoke each frame.
// Draw issues one draw call per spawned entity. There is no shader
// program bound here, only geometry upload and binding; viewProj is
// unused until a shader exists to receive it as a uniform. Good enough
// to prove the pipeline wiring compiles and runs, not to render
// anything visible.
func (s *Sink) Draw(viewProj mgl32.Mat4) {
	s.atlas.bind()
	for _, e := range s.entities {
		gl.BindVertexArray(e.vao)
		gl.DrawElements(gl.TRIANGLES, e.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)
	_ = viewProj
}

func interleave(m *meshing.SectionMesh) []float32 {
	out := make([]float32, 0, len(m.Vertices)*6)
	for i, v := range m.Vertices {
		n := m.Normals[i]
		out = append(out, v.X(), v.Y(), v.Z(), n.X(), n.Y(), n.Z())
	}
	return out
}
