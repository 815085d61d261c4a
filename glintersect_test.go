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

// glintersect_test.go
package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddIntersectionIdempotent(t *testing.T) {
	w := CreateGLWork(nil, nil)
	node := GLNode{X: 0, Y: 0, Dx: ToFixed(2), Dy: 0}
	v := w.AddVertex(ToFixed(3), 0)
	twin := w.AddVertex(ToFixed(3), 0)
	behind := w.AddVertex(ToFixed(-1), ToFixed(5))

	d1 := w.AddIntersection(&node, v)
	d2 := w.AddIntersection(&node, v)
	if d1 != d2 {
		t.Errorf("Distance is not deterministic: %v vs %v\n", d1, d2)
	}
	if want := float64(ToFixed(3)) * float64(ToFixed(2)); d1 != want {
		t.Errorf("Distance = %v, want %v\n", d1, want)
	}
	// different vertex at the same place: same distance, first vertex stays
	if d3 := w.AddIntersection(&node, twin); d3 != d1 {
		t.Errorf("Same point gave different distance %v\n", d3)
	}
	d4 := w.AddIntersection(&node, behind)
	if d4 >= 0 {
		t.Errorf("Point behind origin must have negative distance, got %v\n", d4)
	}

	want := []Event{
		{Distance: d4, Vertex: behind},
		{Distance: d1, Vertex: v},
	}
	if diff := cmp.Diff(want, w.Events.Events()); diff != "" {
		t.Errorf("Events mismatch (-want +got):\n%s", diff)
	}
}

func TestFixSplitSharers(t *testing.T) {
	w := CreateGLWork(nil, nil)
	v0 := w.AddVertex(0, 0)
	vM := w.AddVertex(ToFixed(4), 0)
	v8 := w.AddVertex(ToFixed(8), 0)
	s := w.AddSeg(GLSeg{V1: v0, V2: v8, frontsector: 1, backsector: 2})
	p := w.AddSeg(GLSeg{V1: v8, V2: v0, frontsector: 2, backsector: 1})
	w.SetPartners(s, p)
	node := GLNode{X: 0, Y: 0, Dx: FRACUNIT, Dy: 0}
	d0 := w.AddIntersection(&node, v0)
	w.AddIntersection(&node, vM)
	d8 := w.AddIntersection(&node, v8)
	w.SplitSharers = []SplitSharer{
		{Seg: s, Distance: d0, Forward: true},
		{Seg: p, Distance: d8, Forward: false},
	}

	w.FixSplitSharers(&node)

	if len(w.Segs) != 4 {
		t.Fatalf("Expected the seg and its partner split once, got %d segs\n",
			len(w.Segs))
	}
	type ends struct{ V1, V2 uint32 }
	got := make([]ends, 0, len(w.Segs))
	for i := range w.Segs {
		got = append(got, ends{w.Segs[i].V1, w.Segs[i].V2})
	}
	want := []ends{{v0, vM}, {v8, vM}, {vM, v8}, {vM, v0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Seg endpoints mismatch (-want +got):\n%s", diff)
	}
	if w.Partner(s) != 3 || w.Partner(p) != 2 {
		t.Errorf("Partners not re-linked: %d, %d\n", w.Partner(s), w.Partner(p))
	}
	if diff := cmp.Diff([]uint32{s, 2}, w.ChainToSlice(s)); diff != "" {
		t.Errorf("New piece must follow the seg (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{p, 3}, w.ChainToSlice(p)); diff != "" {
		t.Errorf("New piece must follow the partner (-want +got):\n%s", diff)
	}
	if w.Segs[3].frontsector != 2 || w.Segs[2].frontsector != 1 {
		t.Errorf("Pieces must keep sectors of their sides\n")
	}
	checkPartnerSymmetry(t, w)
}

func TestSplitSegsSplitsPartner(t *testing.T) {
	w := CreateGLWork(nil, nil)
	a := w.AddVertex(0, ToFixed(-2))
	b := w.AddVertex(0, ToFixed(2))
	s := w.AddSeg(GLSeg{V1: a, V2: b, frontsector: 1, backsector: 2})
	p := w.AddSeg(GLSeg{V1: b, V2: a, frontsector: 2, backsector: 1})
	w.SetPartners(s, p)
	set := chainSegs(w, []uint32{s, p})
	node := GLNode{X: 0, Y: 0, Dx: FRACUNIT, Dy: 0}

	front, back := w.SplitSegs(set, &node, NO_INDEX)

	if len(w.Vertices) != 3 || len(w.Segs) != 4 {
		t.Fatalf("Expected one new vertex and two new segs, got %d vertices and %d segs\n",
			len(w.Vertices), len(w.Segs))
	}
	if diff := cmp.Diff([]uint32{3, s}, w.ChainToSlice(front)); diff != "" {
		t.Errorf("Front set mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{p, 2}, w.ChainToSlice(back)); diff != "" {
		t.Errorf("Back set mismatch (-want +got):\n%s", diff)
	}
	if w.Events.Len() != 1 {
		t.Errorf("Expected single event at the split point, got %d\n",
			w.Events.Len())
	}
	if w.totals.segSplits != 2 || w.totals.numMinisegs != 0 {
		t.Errorf("Unexpected totals %+v\n", w.totals)
	}
	checkPartnerSymmetry(t, w)
}

func TestClassifyLineCollinear(t *testing.T) {
	w := CreateGLWork(nil, nil)
	a := w.AddVertex(ToFixed(1), 0)
	b := w.AddVertex(ToFixed(5), 0)
	c := w.AddVertex(ToFixed(5), ToFixed(3))
	same := w.AddSeg(GLSeg{V1: a, V2: b})
	opposite := w.AddSeg(GLSeg{V1: b, V2: a})
	touching := w.AddSeg(GLSeg{V1: b, V2: c})
	node := GLNode{X: 0, Y: 0, Dx: FRACUNIT, Dy: 0}

	if side, _ := w.ClassifyLine(&node, same); side != CLASSIFY_FRONT {
		t.Errorf("Seg along the splitter must go front, got %d\n", side)
	}
	if side, _ := w.ClassifyLine(&node, opposite); side != CLASSIFY_BACK {
		t.Errorf("Seg against the splitter must go back, got %d\n", side)
	}
	side, sidev := w.ClassifyLine(&node, touching)
	if side != CLASSIFY_BACK || sidev != [2]int{0, 1} {
		t.Errorf("Seg touching splitter from behind: side %d, sidev %v\n",
			side, sidev)
	}
}

// Every seg on the splitter must span exactly one pair of adjacent events
func checkSharersClosed(t *testing.T, w *GLWork, segs []uint32) {
	t.Helper()
	pos := make(map[uint32]int)
	for i, ev := range w.Events.Events() {
		pos[ev.Vertex] = i
	}
	for _, s := range segs {
		p1, ok1 := pos[w.Segs[s].V1]
		p2, ok2 := pos[w.Segs[s].V2]
		if !ok1 || !ok2 {
			t.Errorf("Seg %d has an endpoint without event\n", s)
			continue
		}
		if p2-p1 != 1 && p1-p2 != 1 {
			t.Errorf("Seg %d spans events %d..%d\n", s, p1, p2)
		}
	}
}

func TestFixSplitSharersManyEvents(t *testing.T) {
	w := CreateGLWork(nil, nil)
	var verts []uint32
	for x := 0; x <= 8; x += 2 {
		verts = append(verts, w.AddVertex(ToFixed(x), 0))
	}
	first, last := verts[0], verts[len(verts)-1]
	s := w.AddSeg(GLSeg{V1: first, V2: last, frontsector: 1, backsector: 2})
	p := w.AddSeg(GLSeg{V1: last, V2: first, frontsector: 2, backsector: 1})
	w.SetPartners(s, p)
	node := GLNode{X: 0, Y: 0, Dx: FRACUNIT, Dy: 0}
	dists := make([]float64, 0, len(verts))
	for _, v := range verts {
		dists = append(dists, w.AddIntersection(&node, v))
	}
	// backward sharer goes first, so it does all the splitting
	w.SplitSharers = []SplitSharer{
		{Seg: p, Distance: dists[len(dists)-1], Forward: false},
		{Seg: s, Distance: dists[0], Forward: true},
	}

	w.FixSplitSharers(&node)

	if len(w.Segs) != 8 {
		t.Fatalf("Expected 4 pieces per side, got %d segs\n", len(w.Segs))
	}
	back := w.ChainToSlice(p)
	front := w.ChainToSlice(s)
	if diff := cmp.Diff([]uint32{p, 2, 4, 6}, back); diff != "" {
		t.Errorf("Partner chain mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{s, 7, 5, 3}, front); diff != "" {
		t.Errorf("Seg chain mismatch (-want +got):\n%s", diff)
	}
	checkSharersClosed(t, w, append(front, back...))
	checkPartnerSymmetry(t, w)
	for _, seg := range back {
		if w.Segs[seg].frontsector != 2 {
			t.Errorf("Piece %d of the partner lost its sector\n", seg)
		}
	}
}
