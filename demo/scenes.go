package demo

import (
	"github.com/kylittle/Crucible/asset"
	"github.com/kylittle/Crucible/asset/texture"
	"github.com/kylittle/Crucible/asset/wavefront"
	"github.com/kylittle/Crucible/scene"
	"github.com/kylittle/Crucible/types"
)

func init() {
	register(Entry{
		Name:        "bookone",
		Description: "procedurally placed glass, metal and matte spheres",
		Build:       buildBookOne,
	})
	register(Entry{
		Name:        "checkered",
		Description: "two touching checker-textured spheres",
		Build:       buildCheckered,
	})
	register(Entry{
		Name:        "motionblur",
		Description: "bouncing matte spheres with an open shutter",
		Build:       buildMotionBlur,
	})
	register(Entry{
		Name:        "earth",
		Description: "image-mapped globe; reads earthmap.jpg from the asset dir",
		Build:       buildEarth,
	})
	register(Entry{
		Name:        "glow",
		Description: "marble noise sphere lit by an emissive sphere",
		Build:       buildGlow,
	})
	register(Entry{
		Name:        "mesh",
		Description: "triangle mesh model; reads teapot.obj from the asset dir",
		Build:       buildMesh,
	})
}

// The cover scene of the first book: a checkered ground plane sphere, three
// feature spheres and a procedurally seeded field of small ones.
func buildBookOne(seed uint64) (*scene.Scene, error) {
	sc := scene.New()
	smp := types.NewSampler(seed)

	checker, err := scene.NewCheckerColorTexture(0.65, types.XYZ(0.2, 0.3, 0.1), types.XYZ(0.9, 0.9, 0.9))
	if err != nil {
		return nil, err
	}
	sc.Add(scene.NewSphere(types.XYZ(0, -1000, 0), 1000, scene.NewLambertian(checker, 1)))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := types.XYZ(
				float32(a)+0.9*smp.Float32(),
				0.2,
				float32(b)+0.9*smp.Float32(),
			)
			if center.Sub(types.XYZ(4, 0.2, 0)).Len() <= 0.9 {
				continue
			}

			var mat *scene.Material
			switch pick := smp.Float32(); {
			case pick < 0.8:
				mat = scene.NewLambertianColor(smp.Color().MulVec(smp.Color()), 1)
			case pick < 0.95:
				mat = scene.NewMetal(smp.ColorRange(0.5, 1), smp.Range(0, 0.5))
			default:
				mat = scene.NewDielectric(1.5)
			}
			sc.Add(scene.NewSphere(center, 0.2, mat))
		}
	}

	sc.Add(scene.NewSphere(types.XYZ(0, 1, 0), 1, scene.NewDielectric(1.5)))
	sc.Add(scene.NewSphere(types.XYZ(-4, 1, 0), 1, scene.NewLambertianColor(types.XYZ(0.4, 0.2, 0.1), 1)))
	sc.Add(scene.NewSphere(types.XYZ(4, 1, 0), 1, scene.NewMetal(types.XYZ(0.7, 0.6, 0.5), 0)))

	rig := scene.NewCameraRig(types.XYZ(13, 2, 3), types.XYZ(0, 0, 0))
	rig.VfovDeg = 20
	rig.Aperture = 0.1
	sc.Camera = rig
	return sc, nil
}

func buildCheckered(seed uint64) (*scene.Scene, error) {
	sc := scene.New()

	tex, err := scene.NewCheckerColorTexture(0.8, types.XYZ(0.2, 0.3, 0.1), types.XYZ(0.9, 0.9, 0.9))
	if err != nil {
		return nil, err
	}
	checker := scene.NewLambertian(tex, 1)
	sc.Add(scene.NewSphere(types.XYZ(0, -10, 0), 10, checker))
	sc.Add(scene.NewSphere(types.XYZ(0, 10, 0), 10, checker))

	rig := scene.NewCameraRig(types.XYZ(13, 2, 3), types.XYZ(0, 0, 0))
	rig.VfovDeg = 20
	sc.Camera = rig
	return sc, nil
}

// Bouncing spheres whose centers follow keyframed arcs. With a non-zero
// shutter angle the blur falls out of the ray times.
func buildMotionBlur(seed uint64) (*scene.Scene, error) {
	sc := scene.New()
	smp := types.NewSampler(seed)

	checker, err := scene.NewCheckerColorTexture(0.65, types.XYZ(0.2, 0.3, 0.1), types.XYZ(0.9, 0.9, 0.9))
	if err != nil {
		return nil, err
	}
	sc.Add(scene.NewSphere(types.XYZ(0, -1000, 0), 1000, scene.NewLambertian(checker, 1)))

	for a := -5; a < 5; a++ {
		for b := -5; b < 5; b++ {
			center := types.XYZ(
				float32(a)+0.9*smp.Float32(),
				0.2,
				float32(b)+0.9*smp.Float32(),
			)
			mat := scene.NewLambertianColor(smp.Color().MulVec(smp.Color()), 1)

			// Rise over the first half second, settle back on the next.
			apex := center.Add(types.XYZ(0, smp.Range(0, 0.5), 0))
			path := scene.NewTimeline(
				scene.Keyframe{Time: 0, Value: center},
				scene.Keyframe{Time: 0.5, Value: apex, Interp: scene.InterpSmooth},
				scene.Keyframe{Time: 1, Value: center, Interp: scene.InterpSmooth},
			)
			sc.Add(scene.NewMovingSphere(path, 0.2, mat))
		}
	}

	rig := scene.NewCameraRig(types.XYZ(13, 2, 3), types.XYZ(0, 0, 0))
	rig.VfovDeg = 20
	sc.Camera = rig
	return sc, nil
}

func buildEarth(seed uint64) (*scene.Scene, error) {
	res, err := asset.Open("earthmap.jpg")
	if err != nil {
		return nil, err
	}
	defer res.Close()

	img, err := texture.New(res)
	if err != nil {
		return nil, err
	}
	tex, err := scene.NewImageTexture(img)
	if err != nil {
		return nil, err
	}

	sc := scene.New()
	if err = sc.AddNamed("globe", scene.NewSphere(types.XYZ(0, 0, 0), 2, scene.NewLambertian(tex, 1))); err != nil {
		return nil, err
	}

	rig := scene.NewCameraRig(types.XYZ(0, 0, 12), types.XYZ(0, 0, 0))
	rig.VfovDeg = 20
	sc.Camera = rig
	return sc, nil
}

// A dark scene: all illumination comes from the emissive sphere, so paths
// that miss it stay black.
func buildGlow(seed uint64) (*scene.Scene, error) {
	sc := scene.New()
	sc.Sky = scene.NewSkybox(scene.NewSolidTexture(types.Vec3{}))

	marble := scene.NewLambertian(scene.NewNoiseTexture(4, seed), 1)
	sc.Add(scene.NewSphere(types.XYZ(0, -1000, 0), 1000, marble))
	sc.Add(scene.NewSphere(types.XYZ(0, 2, 0), 2, marble))

	lamp := scene.NewDiffuseLightColor(types.XYZ(4, 4, 4))
	sc.Add(scene.NewSphere(types.XYZ(0, 7, 0), 1.5, lamp))

	rig := scene.NewCameraRig(types.XYZ(26, 3, 6), types.XYZ(0, 2, 0))
	rig.VfovDeg = 20
	sc.Camera = rig
	return sc, nil
}

func buildMesh(seed uint64) (*scene.Scene, error) {
	res, err := asset.Open("teapot.obj")
	if err != nil {
		return nil, err
	}
	defer res.Close()

	mesh, err := wavefront.ReadMesh(res)
	if err != nil {
		return nil, err
	}

	sc := scene.New()
	ground := scene.NewLambertianColor(types.XYZ(0.5, 0.5, 0.5), 1)
	sc.Add(scene.NewSphere(types.XYZ(0, -1000, 0), 1000, ground))

	body := scene.NewMetal(types.XYZ(0.8, 0.7, 0.6), 0.1)
	sc.AddMesh(mesh, body, 1.0, types.XYZ(0, 0, 0))

	rig := scene.NewCameraRig(types.XYZ(8, 5, 8), types.XYZ(0, 1, 0))
	rig.VfovDeg = 30
	sc.Camera = rig
	return sc, nil
}
