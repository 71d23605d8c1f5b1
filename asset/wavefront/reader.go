package wavefront

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/kylittle/Crucible/asset"
	"github.com/kylittle/Crucible/log"
	"github.com/kylittle/Crucible/types"
)

// A triangular face. Indices point into the mesh vertex/normal/uv lists; a
// value of -1 marks a missing normal or uv reference.
type Face struct {
	Vertices [3]int
	Normals  [3]int
	UVs      [3]int
}

// A parsed wavefront mesh: raw vertex/normal/uv arrays plus triangulated
// faces. The renderer core receives this already-parsed form and never deals
// with obj text itself.
type Mesh struct {
	Vertices []types.Vec3
	Normals  []types.Vec3
	UVs      []types.Vec2
	Faces    []Face
}

type reader struct {
	logger log.Logger
	mesh   *Mesh
}

// Parse a wavefront obj resource into a mesh. Faces with more than three
// vertices are triangulated as fans; negative indices are resolved relative
// to the current list lengths as per the obj spec.
func ReadMesh(res *asset.Resource) (*Mesh, error) {
	r := &reader{
		logger: log.New("wavefront"),
		mesh:   &Mesh{},
	}

	if err := r.parse(res); err != nil {
		return nil, err
	}
	if len(r.mesh.Faces) == 0 {
		return nil, fmt.Errorf("wavefront: no faces defined in %s", res.Path())
	}

	r.logger.Infof(
		"parsed %s: %d vertices, %d normals, %d uvs, %d triangles",
		res.Path(), len(r.mesh.Vertices), len(r.mesh.Normals), len(r.mesh.UVs), len(r.mesh.Faces),
	)
	return r.mesh, nil
}

func (r *reader) parse(res *asset.Resource) error {
	scanner := bufio.NewScanner(res)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "v":
			err = r.parseVertex(fields[1:])
		case "vn":
			err = r.parseNormal(fields[1:])
		case "vt":
			err = r.parseUV(fields[1:])
		case "f":
			err = r.parseFace(fields[1:])
		default:
			// Groups, materials and smoothing hints are ignored.
		}
		if err != nil {
			return fmt.Errorf("wavefront: %s: line %d: %s", res.Path(), lineNum, err.Error())
		}
	}

	return scanner.Err()
}

func (r *reader) parseVertex(args []string) error {
	v, err := parseFloatVec(args)
	if err != nil {
		return err
	}
	r.mesh.Vertices = append(r.mesh.Vertices, v)
	return nil
}

func (r *reader) parseNormal(args []string) error {
	n, err := parseFloatVec(args)
	if err != nil {
		return err
	}
	r.mesh.Normals = append(r.mesh.Normals, n)
	return nil
}

func (r *reader) parseUV(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("unsupported syntax; expected at least 2 uv components, got %d", len(args))
	}
	u, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return err
	}
	r.mesh.UVs = append(r.mesh.UVs, types.XY(float32(u), float32(v)))
	return nil
}

func (r *reader) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("unsupported syntax; face needs at least 3 vertices, got %d", len(args))
	}

	verts := make([]int, len(args))
	norms := make([]int, len(args))
	uvs := make([]int, len(args))
	for i, arg := range args {
		var err error
		verts[i], uvs[i], norms[i], err = r.parseFaceCorner(arg)
		if err != nil {
			return err
		}
	}

	// Triangulate as a fan anchored on the first corner.
	for i := 2; i < len(args); i++ {
		r.mesh.Faces = append(r.mesh.Faces, Face{
			Vertices: [3]int{verts[0], verts[i-1], verts[i]},
			Normals:  [3]int{norms[0], norms[i-1], norms[i]},
			UVs:      [3]int{uvs[0], uvs[i-1], uvs[i]},
		})
	}
	return nil
}

// Parse a face corner of the form v, v/vt, v//vn or v/vt/vn.
func (r *reader) parseFaceCorner(corner string) (vertex, uv, normal int, err error) {
	uv, normal = -1, -1

	parts := strings.Split(corner, "/")
	if vertex, err = r.resolveIndex(parts[0], len(r.mesh.Vertices)); err != nil {
		return 0, 0, 0, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if uv, err = r.resolveIndex(parts[1], len(r.mesh.UVs)); err != nil {
			return 0, 0, 0, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if normal, err = r.resolveIndex(parts[2], len(r.mesh.Normals)); err != nil {
			return 0, 0, 0, err
		}
	}
	return vertex, uv, normal, nil
}

// Resolve a 1-based obj index, allowing negative references to the most
// recently defined elements.
func (r *reader) resolveIndex(field string, listLen int) (int, error) {
	index, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}

	switch {
	case index > 0 && index <= listLen:
		return index - 1, nil
	case index < 0 && listLen+index >= 0:
		return listLen + index, nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d elements defined)", index, listLen)
	}
}

func parseFloatVec(args []string) (types.Vec3, error) {
	if len(args) < 3 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax; expected 3 components, got %d", len(args))
	}

	var out types.Vec3
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return types.Vec3{}, err
		}
		out[i] = float32(val)
	}
	return out, nil
}
