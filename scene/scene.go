package scene

import (
	"fmt"

	"github.com/kylittle/Crucible/asset/wavefront"
	"github.com/kylittle/Crucible/types"
)

// Scene bundles everything a render needs: the primitive list, the camera
// rig and the environment. Objects can be registered under an alias so demo
// and movie code can fetch them back to attach animation tracks. Scenes are
// built single-threaded and frozen before rendering begins.
type Scene struct {
	Objects List
	Camera  *CameraRig
	Sky     *Skybox

	aliases map[string]Hittable
}

// Create an empty scene with a gradient sky.
func New() *Scene {
	return &Scene{
		Sky:     NewGradientSkybox(),
		aliases: make(map[string]Hittable),
	}
}

// Add an object to the scene.
func (sc *Scene) Add(obj Hittable) {
	sc.Objects = append(sc.Objects, obj)
}

// Add an object under a unique alias.
func (sc *Scene) AddNamed(alias string, obj Hittable) error {
	if _, exists := sc.aliases[alias]; exists {
		return fmt.Errorf("%w: %q", ErrAliasInUse, alias)
	}
	sc.aliases[alias] = obj
	sc.Objects = append(sc.Objects, obj)
	return nil
}

// Fetch a previously registered object by alias.
func (sc *Scene) Lookup(alias string) (Hittable, error) {
	obj, exists := sc.aliases[alias]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlias, alias)
	}
	return obj, nil
}

// Add a wavefront mesh as individual triangles, uniformly scaled and then
// translated. Returns the number of triangles added.
func (sc *Scene) AddMesh(mesh *wavefront.Mesh, mat *Material, scale float32, offset types.Vec3) int {
	for _, face := range mesh.Faces {
		tri := &Triangle{
			V0:  mesh.Vertices[face.Vertices[0]].Mul(scale).Add(offset),
			V1:  mesh.Vertices[face.Vertices[1]].Mul(scale).Add(offset),
			V2:  mesh.Vertices[face.Vertices[2]].Mul(scale).Add(offset),
			Mat: mat,
		}
		// Obj allows corner forms to differ within one face; shading data is
		// only usable when every corner carries it.
		if face.Normals[0] >= 0 && face.Normals[1] >= 0 && face.Normals[2] >= 0 {
			tri.N0 = mesh.Normals[face.Normals[0]]
			tri.N1 = mesh.Normals[face.Normals[1]]
			tri.N2 = mesh.Normals[face.Normals[2]]
		}
		if face.UVs[0] >= 0 && face.UVs[1] >= 0 && face.UVs[2] >= 0 {
			tri.UV0 = mesh.UVs[face.UVs[0]]
			tri.UV1 = mesh.UVs[face.UVs[1]]
			tri.UV2 = mesh.UVs[face.UVs[2]]
		}
		sc.Add(tri)
	}
	return len(mesh.Faces)
}

// Verify the scene can be rendered. Empty scenes and broken materials are
// rejected here so workers never observe them.
func (sc *Scene) Validate() error {
	if len(sc.Objects) == 0 {
		return fmt.Errorf("%w: scene contains no objects", ErrInvalidScene)
	}
	if sc.Camera == nil {
		return fmt.Errorf("%w: scene defines no camera", ErrInvalidScene)
	}

	for _, obj := range sc.Objects {
		var mat *Material
		switch prim := obj.(type) {
		case *Sphere:
			mat = prim.Mat
		case *Triangle:
			mat = prim.Mat
		default:
			continue
		}
		if mat == nil {
			return fmt.Errorf("%w: primitive without a material", ErrInvalidScene)
		}
		if err := mat.Validate(); err != nil {
			return err
		}
	}
	return nil
}
