package scene

import (
	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/types"
)

const perlinPointCount = 256

// Gradient-lattice Perlin noise backing the TexNoise texture variant.
type perlin struct {
	randVec [perlinPointCount]types.Vec3
	permX   [perlinPointCount]int
	permY   [perlinPointCount]int
	permZ   [perlinPointCount]int
}

func newPerlin(seed uint64) *perlin {
	smp := types.NewSampler(seed)

	p := &perlin{}
	for i := 0; i < perlinPointCount; i++ {
		p.randVec[i] = types.XYZ(smp.Range(-1, 1), smp.Range(-1, 1), smp.Range(-1, 1)).Normalize()
	}
	generatePerm(smp, &p.permX)
	generatePerm(smp, &p.permY)
	generatePerm(smp, &p.permZ)
	return p
}

func generatePerm(smp *types.Sampler, perm *[perlinPointCount]int) {
	for i := 0; i < perlinPointCount; i++ {
		perm[i] = i
	}
	for i := perlinPointCount - 1; i > 0; i-- {
		target := int(smp.Float32() * float32(i+1))
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise in [-1, 1] with trilinear Hermitian smoothing.
func (p *perlin) noise(pt types.Vec3) float32 {
	u := pt[0] - math32.Floor(pt[0])
	v := pt[1] - math32.Floor(pt[1])
	w := pt[2] - math32.Floor(pt[2])

	i := int(math32.Floor(pt[0]))
	j := int(math32.Floor(pt[1]))
	k := int(math32.Floor(pt[2]))

	var c [2][2][2]types.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.randVec[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}

	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	var accum float32
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				weight := types.XYZ(u-float32(di), v-float32(dj), w-float32(dk))
				fi, fj, fk := float32(di), float32(dj), float32(dk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[di][dj][dk].Dot(weight)
			}
		}
	}
	return accum
}

// Summed octaves of noise. Always non-negative.
func (p *perlin) turbulence(pt types.Vec3, depth int) float32 {
	var accum float32
	weight := float32(1.0)

	for i := 0; i < depth; i++ {
		accum += weight * p.noise(pt)
		weight *= 0.5
		pt = pt.Mul(2)
	}
	return math32.Abs(accum)
}
