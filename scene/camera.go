package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/types"
)

// Camera is a thin-lens pinhole camera frozen for a single frame. Rays it
// casts carry a uniformly sampled time inside the shutter interval, which is
// what produces motion blur against animated primitives.
type Camera struct {
	origin          types.Vec3
	lowerLeftCorner types.Vec3
	horizontal      types.Vec3
	vertical        types.Vec3

	// Lens basis for defocus sampling.
	u, v       types.Vec3
	lensRadius float32

	// Shutter open/close times.
	t0, t1 float32
}

// Create a camera for a frame. vfovDeg is the vertical field of view in
// degrees, aperture the lens diameter and focusDist the distance to the
// plane of perfect focus. Rays are timed uniformly inside [t0, t1].
func NewCamera(lookFrom, lookAt, vup types.Vec3, vfovDeg, aspect, aperture, focusDist, t0, t1 float32) (*Camera, error) {
	theta := vfovDeg * math32.Pi / 180.0
	halfHeight := math32.Tan(theta / 2)
	halfWidth := aspect * halfHeight

	w := lookFrom.Sub(lookAt)
	if w.NearZero() {
		return nil, fmt.Errorf("%w: camera position and target coincide", ErrInvalidScene)
	}
	w = w.Normalize()
	u := vup.Cross(w)
	if u.NearZero() {
		return nil, fmt.Errorf("%w: camera up vector is parallel to the view direction", ErrInvalidScene)
	}
	u = u.Normalize()
	v := w.Cross(u)

	cam := &Camera{
		origin:     lookFrom,
		horizontal: u.Mul(2 * halfWidth * focusDist),
		vertical:   v.Mul(2 * halfHeight * focusDist),
		u:          u,
		v:          v,
		lensRadius: aperture / 2,
		t0:         t0,
		t1:         t1,
	}
	cam.lowerLeftCorner = lookFrom.
		Sub(u.Mul(halfWidth * focusDist)).
		Sub(v.Mul(halfHeight * focusDist)).
		Sub(w.Mul(focusDist))
	return cam, nil
}

// Cast a primary ray through film coordinates (s, t) in [0, 1]. The origin
// is jittered over the lens disk when the aperture is non-zero.
func (c *Camera) CastRay(s, t float32, smp *types.Sampler) types.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := smp.InUnitDisk().Mul(c.lensRadius)
		origin = origin.Add(c.u.Mul(rd[0])).Add(c.v.Mul(rd[1]))
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Mul(s)).
		Add(c.vertical.Mul(t))

	time := c.t0
	if c.t1 > c.t0 {
		time = smp.Range(c.t0, c.t1)
	}
	return types.NewRayAtTime(origin, target.Sub(origin), time)
}

// CameraRig animates a camera over a movie. Position and target follow
// timelines; the remaining lens parameters are fixed for the whole clip.
type CameraRig struct {
	LookFrom *Timeline
	LookAt   *Timeline
	Vup      types.Vec3

	VfovDeg   float32
	Aperture  float32
	FocusDist float32
}

// Create a rig with a static position and target. Useful for single frames
// and as the starting point for chained keyframe setup.
func NewCameraRig(lookFrom, lookAt types.Vec3) *CameraRig {
	return &CameraRig{
		LookFrom:  ConstantTimeline(lookFrom),
		LookAt:    ConstantTimeline(lookAt),
		Vup:       types.XYZ(0, 1, 0),
		VfovDeg:   45,
		FocusDist: 10,
	}
}

// Freeze the rig into a camera for the frame starting at frameTime. The
// shutter stays open for shutterLen seconds.
func (rig *CameraRig) CameraAt(frameTime, shutterLen, aspect float32) (*Camera, error) {
	return NewCamera(
		rig.LookFrom.At(frameTime),
		rig.LookAt.At(frameTime),
		rig.Vup,
		rig.VfovDeg,
		aspect,
		rig.Aperture,
		rig.FocusDist,
		frameTime,
		frameTime+shutterLen,
	)
}
