package demo

import (
	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/scene"
	"github.com/kylittle/Crucible/types"
)

func init() {
	register(Entry{
		Name:        "orbit",
		Description: "camera circling the bookone spheres over four seconds",
		Build:       buildOrbit,
	})
	register(Entry{
		Name:        "bounce",
		Description: "a sphere dropping and bouncing to rest over three seconds",
		Build:       buildBounce,
	})
}

// The bookone scene with the camera riding a keyframed circle around the
// origin. Smooth keys every eighth of a turn approximate the arc closely
// enough at 24 fps.
func buildOrbit(seed uint64) (*scene.Scene, error) {
	sc, err := buildBookOne(seed)
	if err != nil {
		return nil, err
	}

	const orbitSeconds float32 = 4
	const orbitSteps = 8
	radius := types.XYZ(13, 0, 3).Len()

	track := scene.NewTimeline()
	for i := 0; i <= orbitSteps; i++ {
		angle := 2 * math32.Pi * float32(i) / orbitSteps
		track.AddKey(
			orbitSeconds*float32(i)/orbitSteps,
			types.XYZ(radius*math32.Cos(angle), 2, radius*math32.Sin(angle)),
			scene.InterpSmooth,
		)
	}
	sc.Camera.LookFrom = track
	return sc, nil
}

func buildBounce(seed uint64) (*scene.Scene, error) {
	sc := scene.New()

	checker, err := scene.NewCheckerColorTexture(0.8, types.XYZ(0.1, 0.1, 0.1), types.XYZ(0.9, 0.9, 0.9))
	if err != nil {
		return nil, err
	}
	sc.Add(scene.NewSphere(types.XYZ(0, -1000, 0), 1000, scene.NewLambertian(checker, 1)))

	// Successive bounces lose half their height.
	path := scene.NewTimeline(
		scene.Keyframe{Time: 0, Value: types.XYZ(0, 4, 0)},
		scene.Keyframe{Time: 1, Value: types.XYZ(0, 1, 0), Interp: scene.InterpSmooth},
		scene.Keyframe{Time: 1.5, Value: types.XYZ(0, 2.5, 0), Interp: scene.InterpSmooth},
		scene.Keyframe{Time: 2, Value: types.XYZ(0, 1, 0), Interp: scene.InterpSmooth},
		scene.Keyframe{Time: 2.5, Value: types.XYZ(0, 1.75, 0), Interp: scene.InterpSmooth},
		scene.Keyframe{Time: 3, Value: types.XYZ(0, 1, 0), Interp: scene.InterpSmooth},
	)
	ball := scene.NewMovingSphere(path, 1, scene.NewLambertianColor(types.XYZ(0.7, 0.3, 0.3), 1))
	if err := sc.AddNamed("ball", ball); err != nil {
		return nil, err
	}

	rig := scene.NewCameraRig(types.XYZ(0, 3, 14), types.XYZ(0, 2, 0))
	rig.VfovDeg = 30
	sc.Camera = rig
	return sc, nil
}
