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

// glgeometry_test.go
package main

import (
	"testing"
)

func anglesClose(a, b Angle) bool {
	d := a - b
	return d < 16 || -d < 16
}

func TestPointToAngleCardinal(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   Angle
	}{
		{FRACUNIT, 0, 0},
		{0, FRACUNIT, ANG90},
		{-FRACUNIT, 0, ANG180},
		{0, -FRACUNIT, ANG270},
		{FRACUNIT, FRACUNIT, ANG90 / 2},
		// magnitude doesn't matter, only direction
		{0, -4 * FRACUNIT * 65536, ANG270},
	}
	for _, tt := range tests {
		got := PointToAngle(tt.dx, tt.dy)
		if !anglesClose(got, tt.want) {
			t.Errorf("PointToAngle(%v, %v) = %x, want %x\n", tt.dx, tt.dy,
				got, tt.want)
		}
	}
}

func TestPointOnSide(t *testing.T) {
	// line y = 0 going east: south is on the right, which is front
	tests := []struct {
		name string
		x, y Fixed
		want int
	}{
		{"south", 0, ToFixed(-1), -1},
		{"north", 0, ToFixed(1), 1},
		{"on line", ToFixed(5), 0, 0},
		{"on line behind origin", ToFixed(-5), 0, 0},
		{"within epsilon", ToFixed(2), 3, 0},
		{"just outside epsilon", ToFixed(2), 100, 1},
		{"far south", ToFixed(7), ToFixed(-30000), -1},
	}
	for _, tt := range tests {
		got := PointOnSide(tt.x, tt.y, 0, 0, FRACUNIT, 0)
		if got != tt.want {
			t.Errorf("%s: PointOnSide(%d, %d) = %d, want %d\n", tt.name,
				tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFixedConversion(t *testing.T) {
	f := ToFixed(-3)
	if f.Int() != -3 {
		t.Errorf("ToFixed(-3).Int() = %d\n", f.Int())
	}
	if f.Float() != -3.0 {
		t.Errorf("ToFixed(-3).Float() = %v\n", f.Float())
	}
	half := Fixed(FRACUNIT / 2)
	if half.Float() != 0.5 {
		t.Errorf("Half unit is %v\n", half.Float())
	}
}

func TestNodeFromSegScaling(t *testing.T) {
	w := CreateGLWork(nil, nil)
	a := w.AddVertex(ToFixed(-32768), 0)
	b := w.AddVertex(ToFixed(32767), 0)
	seg := w.AddSeg(GLSeg{V1: a, V2: b})
	node := w.NodeFromSeg(seg)
	// 65535 map units doesn't fit in 16.16, the direction is halved
	want := Fixed((int64(65535) << FRACBITS) / 2)
	if node.Dx != want || node.Dy != 0 {
		t.Errorf("Got direction (%d, %d), want (%d, 0)\n", node.Dx, node.Dy,
			want)
	}
	if node.X != ToFixed(-32768) || node.Y != 0 {
		t.Errorf("Origin must be the seg start, got (%d, %d)\n", node.X, node.Y)
	}

	c := w.AddVertex(ToFixed(10), ToFixed(20))
	seg2 := w.AddSeg(GLSeg{V1: c, V2: b})
	node = w.NodeFromSeg(seg2)
	if node.Dx != ToFixed(32757) || node.Dy != ToFixed(-20) {
		t.Errorf("Short enough direction must be kept as is, got (%d, %d)\n",
			node.Dx, node.Dy)
	}
}
