// Copyright (C) 2026, VigilantDoomer
//
// This file is part of VigilantBSP program.
//
// VigilantBSP is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// VigilantBSP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VigilantBSP.  If not, see <https://www.gnu.org/licenses/>.

// glgeometry
package main

import (
	"math"
)

// Fixed-point and binary angle primitives shared by GL nodes code. These
// follow ZDBSP conventions, not the integer Number of vanilla nodes code: GL
// nodes need the fractional part of vertices created by splits

const FRACBITS = 16

const FRACUNIT = 1 << FRACBITS

// Fixed is a 16.16 signed fixed point coordinate
type Fixed int32

// Angle is a binary angle measurement: the full circle is 2^32, so that
// arithmetic wraps around exactly like angles do
type Angle uint32

const (
	ANG90     = Angle(0x40000000)
	ANG180    = Angle(0x80000000)
	ANG270    = Angle(0xc0000000)
	ANGLE_MAX = Angle(0xffffffff)
)

// ZDBSP: "Any segs within this many BAMs of the splitter are considered
// colinear with it". Used only by loop closure checks. Not to be confused with
// distances along the splitter, which are compared exactly
const ANGLE_EPSILON = Angle(5000)

// ZDBSP: "points within this distance of a line will be considered on the
// line". Unlike the constant used by Zdoom extended nodes code in VigilantBSP,
// this one is NOT descaled, because GL nodes code keeps coordinates in 16.16
// fixed point just as ZDBSP did
const SIDE_EPSILON = 6.5536

// Above this magnitude of cross product the point is too far away from the
// line for the expensive distance check to matter
const FAR_ENOUGH = float64(17179869184) // 4<<32

func ToFixed(x int) Fixed {
	return Fixed(x << FRACBITS)
}

func (f Fixed) Float() float64 {
	return float64(f) / FRACUNIT
}

// Integer part, for printing
func (f Fixed) Int() int {
	return int(f >> FRACBITS)
}

// GLNode is the splitter (partition line) currently being processed: an origin
// and a direction vector that is not normalized
type GLNode struct {
	X, Y   Fixed
	Dx, Dy Fixed
}

// PointToAngle returns the angle of vector (dx, dy), given in fixed point
// units. Takes float64 so that differences between far away vertices can't
// overflow. The result only depends on the single atan2 call, so the same
// vector always maps to the same angle
func PointToAngle(dx, dy float64) Angle {
	const rad2bam = float64(1<<30) / math.Pi
	ang := math.Atan2(dy, dx)
	// go through int32 first: conversion of negative float to unsigned integer
	// is implementation-specific
	return Angle(uint32(int32(ang*rad2bam)) << 1)
}

// Angle of the vector going from vertex "from" to vertex "to"
func vertexAngle(from, to *GLVertex) Angle {
	return PointToAngle(float64(to.X)-float64(from.X),
		float64(to.Y)-float64(from.Y))
}

// PointOnSide tells which side of the line passing through (x1, y1) in the
// direction (dx, dy) the point (x, y) is on. Returns -1 for front (right side
// of the direction), +1 for back, 0 if the point is on the line
func PointOnSide(x, y, x1, y1, dx, dy Fixed) int {
	fdx := float64(dx)
	fdy := float64(dy)
	fx := float64(x)
	fy := float64(y)
	fx1 := float64(x1)
	fy1 := float64(y1)

	sNum := (fy1-fy)*fdx - (fx1-fx)*fdy

	if math.Abs(sNum) < FAR_ENOUGH {
		// Either the point is very near the line, or the segment defining
		// the line is very short: need to know the actual distance
		l := fdx*fdx + fdy*fdy
		dist := sNum * sNum / l
		if dist < SIDE_EPSILON*SIDE_EPSILON {
			return 0
		}
	}
	if sNum > 0.0 {
		return -1
	}
	return 1
}
