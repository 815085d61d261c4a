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

// glwork
package main

// Vertex and seg arenas of a GL nodes build session. Everything refers to
// vertices and segs by their index in the arena, so that arenas can grow
// without invalidating anything that points into them

// Index value meaning "none". Never a valid arena position
const NO_INDEX = ^uint32(0)

// Sector of a miniseg side that was not yet assigned
const SECTOR_UNRESOLVED = int32(-1)

// Plane of a seg that didn't come from a line or a splitter
const PLANE_UNRESOLVED = int32(-1)

// Linedef (and sidedef) of minisegs
const LINEDEF_NONE = uint16(0xFFFF)

type GLVertex struct {
	X     Fixed
	Y     Fixed
	segs  uint32 // segs starting at this vertex, linked via nextforvert
	segs2 uint32 // segs ending at this vertex, linked via nextforvert2
}

type GLSeg struct {
	V1           uint32
	V2           uint32
	Linedef      uint16 // LINEDEF_NONE for minisegs
	Sidedef      uint16 // SIDEDEF_NONE for minisegs
	partner      uint32 // same line walked the other way, on the other side
	next         uint32 // next seg in the working set
	nextforvert  uint32 // next seg starting at V1
	nextforvert2 uint32 // next seg ending at V2
	frontsector  int32
	backsector   int32
	planenum     int32
}

func (s *GLSeg) IsMiniseg() bool {
	return s.Linedef == LINEDEF_NONE
}

// Subsector is recorded by the head of its seg chain while the tree is being
// built: partners of its segs may still get split later, and their new pieces
// are spliced into this very chain. Seg list is resolved when the build ends
type GLSubsector struct {
	head     uint32
	FirstSeg uint32 // index into GLWork.ssegs
	NumSegs  uint32
	Closed   bool
}

type GLTotals struct {
	numNodes      int
	numSubsectors int
	numSegs       int
	numMinisegs   int
	segSplits     int
	numUnclosed   int
	maxDepth      int
}

// GLWork is a single build session. It is not safe for concurrent use, but
// independent sessions share nothing and can run in parallel
type GLWork struct {
	Vertices     []GLVertex
	Segs         []GLSeg
	Events       *EventTree    // intersections with the current splitter
	SplitSharers []SplitSharer // segs lying on the current splitter
	vertexMap    *VertexMap
	diag         GLDiagnostics
	mlog         *MiniLogger
	subsectors   []GLSubsector
	ssegs        []uint32 // seg indices of all subsectors, in subsector order
	unclosed     []uint32 // indices of subsectors that failed closure check
	totals       GLTotals
}

// CreateGLWork creates an empty session. A nil mlog means output goes to the
// central log, a nil diag means anomalies are not reported anywhere
func CreateGLWork(mlog *MiniLogger, diag GLDiagnostics) *GLWork {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &GLWork{
		Events: CreateEventTree(),
		diag:   diag,
		mlog:   mlog,
	}
}

func (w *GLWork) AddVertex(x, y Fixed) uint32 {
	idx := uint32(len(w.Vertices))
	w.Vertices = append(w.Vertices, GLVertex{
		X:     x,
		Y:     y,
		segs:  NO_INDEX,
		segs2: NO_INDEX,
	})
	return idx
}

// AddSeg appends a seg that comes from a line (or a test fixture) and threads
// it into the lists of its vertices. Link fields of the argument are ignored
func (w *GLWork) AddSeg(seg GLSeg) uint32 {
	idx := uint32(len(w.Segs))
	seg.partner = NO_INDEX
	seg.next = NO_INDEX
	seg.nextforvert = w.Vertices[seg.V1].segs
	seg.nextforvert2 = w.Vertices[seg.V2].segs2
	w.Vertices[seg.V1].segs = idx
	w.Vertices[seg.V2].segs2 = idx
	w.Segs = append(w.Segs, seg)
	return idx
}

// SetPartners makes two segs partners of each other. They must be mirror
// images
func (w *GLWork) SetPartners(a, b uint32) {
	w.checkPartner(a, b)
	w.Segs[a].partner = b
	w.Segs[b].partner = a
}

func (w *GLWork) Partner(seg uint32) uint32 {
	return w.Segs[seg].partner
}

// Corrupted input is the only way to get here, there's no sane recovery
func (w *GLWork) checkPartner(seg, partner uint32) {
	s := &w.Segs[seg]
	p := &w.Segs[partner]
	if p.V1 != s.V2 || p.V2 != s.V1 {
		Log.Panic("Seg %d (%d->%d) and its partner %d (%d->%d) are not mirror images of each other\n",
			seg, s.V1, s.V2, partner, p.V1, p.V2)
	}
}

// SplitSeg splits seg at vertex splitvert. The original seg keeps its start
// and now ends at splitvert, the returned new seg runs from splitvert to where
// the original used to end. Vertex seg lists are updated accordingly, but
// partner and next links of the new seg are left for the caller to decide
func (w *GLWork) SplitSeg(segnum, splitvert uint32) uint32 {
	newnum := uint32(len(w.Segs))
	newseg := w.Segs[segnum]
	oldv2 := newseg.V2

	w.removeSegFromVert2(segnum, oldv2)

	newseg.V1 = splitvert
	newseg.next = NO_INDEX
	newseg.nextforvert = w.Vertices[splitvert].segs
	w.Vertices[splitvert].segs = newnum
	newseg.nextforvert2 = w.Vertices[oldv2].segs2
	w.Vertices[oldv2].segs2 = newnum

	w.Segs[segnum].V2 = splitvert
	w.Segs[segnum].nextforvert2 = w.Vertices[splitvert].segs2
	w.Vertices[splitvert].segs2 = segnum

	w.Segs = append(w.Segs, newseg)
	w.totals.segSplits++
	w.mlog.Verbose(3, "Split seg %d to get seg %d\n", segnum, newnum)
	return newnum
}

func (w *GLWork) removeSegFromVert2(segnum, vertnum uint32) {
	v := &w.Vertices[vertnum]
	if v.segs2 == segnum {
		v.segs2 = w.Segs[segnum].nextforvert2
		return
	}
	for prev := v.segs2; prev != NO_INDEX; prev = w.Segs[prev].nextforvert2 {
		if w.Segs[prev].nextforvert2 == segnum {
			w.Segs[prev].nextforvert2 = w.Segs[segnum].nextforvert2
			return
		}
	}
	Log.Panic("Seg %d was not found among segs ending at vertex %d\n",
		segnum, vertnum)
}

// SegsStartingAt lists segs starting at vertex, most recently added first
func (w *GLWork) SegsStartingAt(vertex uint32) []uint32 {
	var res []uint32
	for s := w.Vertices[vertex].segs; s != NO_INDEX; s = w.Segs[s].nextforvert {
		res = append(res, s)
	}
	return res
}

// SegsEndingAt lists segs ending at vertex, most recently added first
func (w *GLWork) SegsEndingAt(vertex uint32) []uint32 {
	var res []uint32
	for s := w.Vertices[vertex].segs2; s != NO_INDEX; s = w.Segs[s].nextforvert2 {
		res = append(res, s)
	}
	return res
}

// ChainToSlice follows next links from head. Printf debugging and tests
func (w *GLWork) ChainToSlice(head uint32) []uint32 {
	var res []uint32
	for s := head; s != NO_INDEX; s = w.Segs[s].next {
		res = append(res, s)
	}
	return res
}
