package noise

import "math"

const (
	// DefaultSeed is used when a seed is missing or normalises to zero.
	DefaultSeed int64 = 123

	lcgMultiplier = 16807
	lcgModulus    = 2147483647

	// slice offsets used to decorrelate neighbouring time slices
	sliceOffsetX = 31.41
	sliceOffsetY = 17.93
)

// Perlin is a seeded 2D gradient noise with a time axis built from blended slices.
// It is immutable after construction and safe for concurrent use.
type Perlin struct {
	seed int64
	perm [512]int
}

// NewPerlin builds the permutation table for seed.
func NewPerlin(seed int64) *Perlin {
	s := NormalizeSeed(seed)
	return &Perlin{seed: s, perm: Permutation(s)}
}

// Seed returns the normalised seed the table was built from.
func (p *Perlin) Seed() int64 { return p.seed }

// NormalizeSeed folds any integer into the LCG's valid state range [1, 2^31-2].
// Zero (and multiples of the modulus) fall back to DefaultSeed.
func NormalizeSeed(seed int64) int64 {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	if s == 0 {
		return DefaultSeed
	}
	return s
}

// Permutation returns the doubled 256-entry permutation for seed. A Park-Miller
// generator drives a Fisher-Yates shuffle from the top index down.
func Permutation(seed int64) [512]int {
	var p [256]int
	for i := range p {
		p[i] = i
	}

	n := NormalizeSeed(seed)
	for i := 255; i > 0; i-- {
		n = (n * lcgMultiplier) % lcgModulus
		j := int(n % int64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	var perm [512]int
	for i := range perm {
		perm[i] = p[i&255]
	}
	return perm
}

// Fade is the quintic curve 6t^5 - 15t^4 + 10t^3.
func Fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y float64) float64 {
	h := hash & 3
	u, v := y, x
	if h < 2 {
		u, v = x, y
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// lattice wraps floor(v) into [0, 255] for any magnitude, negative included.
func lattice(fv float64) int {
	return int(math.Mod(fv, 256)) & 255
}

// Sample2D evaluates gradient noise at (x, y). The result lies roughly in [-1, 1].
func (p *Perlin) Sample2D(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	xi, yi := lattice(fx), lattice(fy)
	x -= fx
	y -= fy

	u, v := Fade(x), Fade(y)
	a := p.perm[xi] + yi
	b := p.perm[xi+1] + yi

	return lerp(
		lerp(grad(p.perm[a], x, y), grad(p.perm[b], x-1, y), u),
		lerp(grad(p.perm[a+1], x, y-1), grad(p.perm[b+1], x-1, y-1), u),
		v,
	)
}

// Sample3D treats z as time: it fades between the 2D slices at floor(z) and floor(z)+1.
func (p *Perlin) Sample3D(x, y, z float64) float64 {
	z0 := math.Floor(z)
	zf := z - z0
	return lerp(
		p.Sample2D(x+z0*sliceOffsetX, y+z0*sliceOffsetY),
		p.Sample2D(x+(z0+1)*sliceOffsetX, y+(z0+1)*sliceOffsetY),
		Fade(zf),
	)
}

// Fractal3D sums octaves of Sample3D at doubling frequency and halving amplitude,
// then maps the sum into [0, 1].
func (p *Perlin) Fractal3D(x, y, z float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}
	value, amp, freq := 0.0, 0.5, 1.0
	for i := 0; i < octaves; i++ {
		value += amp * p.Sample3D(x*freq, y*freq, z*freq)
		amp *= 0.5
		freq *= 2
	}
	return unit(value*0.5 + 0.5)
}

// unit clamps v into [0, 1]; NaN maps to the midpoint.
func unit(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0.5
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
