// Package noise provides seeded scalar fields used as a synthetic elevation surface.
//
// [Perlin] is the default: a 2D gradient noise whose permutation table is a pure
// function of the seed ([Permutation]), extended along a time axis by fading between
// offset 2D slices, and summed over octaves by [Perlin.Fractal3D]. [Simplex] wraps
// OpenSimplex with the same [Field] contract.
//
// Fields are read-only after construction; the same seed always reproduces the same
// values bit for bit.
package noise
