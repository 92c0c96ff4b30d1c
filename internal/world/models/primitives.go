package models

import (
	"math"
)

// Voxel is an integer cell offset.
type Voxel struct {
	X, Y, Z int
}

// Circle returns the horizontal disc of cells within radius of center.
func Circle(center Voxel, radius float64) []Voxel {
	r := int(math.Ceil(radius))
	out := make([]Voxel, 0, (2*r+1)*(2*r+1))
	r2 := radius * radius
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if float64(dx*dx+dz*dz) <= r2 {
				out = append(out, Voxel{center.X + dx, center.Y, center.Z + dz})
			}
		}
	}
	return out
}

// Sphere returns the filled ball of cells within radius of center.
func Sphere(center Voxel, radius float64) []Voxel {
	r := int(math.Ceil(radius))
	out := make([]Voxel, 0, (2*r+1)*(2*r+1)*(2*r+1)/2)
	r2 := radius * radius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				if float64(dx*dx+dy*dy+dz*dz) <= r2 {
					out = append(out, Voxel{center.X + dx, center.Y + dy, center.Z + dz})
				}
			}
		}
	}
	return out
}

// Line returns the cells of a 3D Bresenham line from start to end, inclusive.
func Line(start, end Voxel) []Voxel {
	dx, dy, dz := abs(end.X-start.X), abs(end.Y-start.Y), abs(end.Z-start.Z)
	sx, sy, sz := sign(end.X-start.X), sign(end.Y-start.Y), sign(end.Z-start.Z)
	x, y, z := start.X, start.Y, start.Z

	n := max(dx, dy, dz)
	out := make([]Voxel, 0, n+1)
	out = append(out, Voxel{x, y, z})

	// Drive along the dominant axis; the two error terms track the others.
	switch {
	case dx >= dy && dx >= dz:
		ey, ez := 2*dy-dx, 2*dz-dx
		for i := 0; i < dx; i++ {
			x += sx
			if ey >= 0 {
				y += sy
				ey -= 2 * dx
			}
			if ez >= 0 {
				z += sz
				ez -= 2 * dx
			}
			ey += 2 * dy
			ez += 2 * dz
			out = append(out, Voxel{x, y, z})
		}
	case dy >= dx && dy >= dz:
		ex, ez := 2*dx-dy, 2*dz-dy
		for i := 0; i < dy; i++ {
			y += sy
			if ex >= 0 {
				x += sx
				ex -= 2 * dy
			}
			if ez >= 0 {
				z += sz
				ez -= 2 * dy
			}
			ex += 2 * dx
			ez += 2 * dz
			out = append(out, Voxel{x, y, z})
		}
	default:
		ex, ey := 2*dx-dz, 2*dy-dz
		for i := 0; i < dz; i++ {
			z += sz
			if ex >= 0 {
				x += sx
				ex -= 2 * dz
			}
			if ey >= 0 {
				y += sy
				ey -= 2 * dz
			}
			ex += 2 * dx
			ey += 2 * dy
			out = append(out, Voxel{x, y, z})
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
