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

// glminisegs
package main

// Minisegs are segs that don't belong to any line. They run along the
// splitter and close subsector polygons, which is what GL renderers need

// AddMinisegs walks the intersections with the splitter from one end to the
// other, and for every two consecutive ones adds a pair of minisegs (one for
// front, one for back) between them. fset and bset are heads of front and back
// working sets, new minisegs are prepended to them.
// Minisegs are only added where they can create valid loops on both the front
// and the back of the splitter. Some subsectors may remain unclosed if their
// sectors are unclosed, but no subsectors are needlessly created in the void
func (w *GLWork) AddMinisegs(node *GLNode, splitseg uint32, fset, bset *uint32) {
	var prev Event
	hasPrev := false
	for event, ok := w.Events.Minimum(); ok; event, ok = w.Events.Successor(event) {
		if hasPrev {
			w.addMinisegPair(node, splitseg, prev.Vertex, event.Vertex, fset, bset)
		}
		prev = event
		hasPrev = true
	}
}

func (w *GLWork) addMinisegPair(node *GLNode, splitseg uint32, pv, ev uint32,
	fset, bset *uint32) {
	fseg1 := w.CheckLoopStart(node.Dx, node.Dy, pv, ev)
	if fseg1 == NO_INDEX {
		return
	}
	bseg1 := w.CheckLoopStart(-node.Dx, -node.Dy, ev, pv)
	if bseg1 == NO_INDEX {
		return
	}
	if w.CheckLoopEnd(node.Dx, node.Dy, ev) == NO_INDEX ||
		w.CheckLoopEnd(-node.Dx, -node.Dy, pv) == NO_INDEX {
		return
	}

	// Miniseg on the front side
	fnseg := w.AddMiniseg(pv, ev, NO_INDEX, fseg1, splitseg)
	w.Segs[fnseg].next = *fset
	*fset = fnseg

	// Miniseg on the back side
	bnseg := w.AddMiniseg(ev, pv, fnseg, bseg1, splitseg)
	w.Segs[bnseg].next = *bset
	*bset = bnseg

	fsector := w.Segs[fseg1].frontsector
	bsector := w.Segs[bseg1].frontsector

	w.Segs[fnseg].frontsector = fsector
	w.Segs[fnseg].backsector = bsector
	w.Segs[bnseg].frontsector = bsector
	w.Segs[bnseg].backsector = fsector

	// Only report if this might be bad
	if fsector != bsector && fsector != w.Segs[bseg1].backsector &&
		bsector != w.Segs[fseg1].backsector {
		pvx := &w.Vertices[pv]
		evx := &w.Vertices[ev]
		w.diag.SectorMismatch(SectorMismatch{
			FrontMiniseg: fnseg,
			BackMiniseg:  bnseg,
			FrontSector:  fsector,
			BackSector:   bsector,
			X1:           pvx.X,
			Y1:           pvx.Y,
			X2:           evx.X,
			Y2:           evx.Y,
		})
	}

	w.totals.numMinisegs += 2
	w.mlog.Verbose(3, "**Minisegs** %d/%d added %d(%d,%d)->%d(%d,%d)\n",
		fnseg, bnseg, pv, w.Vertices[pv].X.Int(), w.Vertices[pv].Y.Int(),
		ev, w.Vertices[ev].X.Int(), w.Vertices[ev].Y.Int())
}

// AddMiniseg creates a single miniseg v1->v2 and returns its index. The new
// seg becomes the head of both the list of segs starting at v1 and the list
// of segs ending at v2. If partner is given, it must run v2->v1, and it is
// linked back to the new seg. seg1 is the seg whose loop the miniseg
// continues, splitseg (if any) is the seg the splitter came from
func (w *GLWork) AddMiniseg(v1, v2, partner, seg1, splitseg uint32) uint32 {
	newseg := GLSeg{
		V1:           v1,
		V2:           v2,
		Linedef:      LINEDEF_NONE,
		Sidedef:      SIDEDEF_NONE,
		partner:      NO_INDEX,
		next:         NO_INDEX,
		nextforvert:  w.Vertices[v1].segs,
		nextforvert2: w.Vertices[v2].segs2,
		frontsector:  SECTOR_UNRESOLVED,
		backsector:   SECTOR_UNRESOLVED,
		planenum:     PLANE_UNRESOLVED,
	}
	if splitseg != NO_INDEX {
		newseg.planenum = w.Segs[splitseg].planenum
	}

	nseg := uint32(len(w.Segs))
	if partner != NO_INDEX {
		p := &w.Segs[partner]
		if p.V1 != v2 || p.V2 != v1 {
			Log.Panic("Miniseg %d->%d can't be a partner of seg %d (%d->%d)\n",
				v1, v2, partner, p.V1, p.V2)
		}
		newseg.partner = partner
	}
	w.Segs = append(w.Segs, newseg)
	if partner != NO_INDEX {
		w.Segs[partner].partner = nseg
	}
	w.Vertices[v1].segs = nseg
	w.Vertices[v2].segs2 = nseg
	w.mlog.Verbose(4, "Miniseg %d continues the loop of seg %d\n", nseg, seg1)
	return nseg
}

// CheckLoopStart tells whether a miniseg leaving vertex in direction (dx, dy)
// would continue an existing loop. It finds the seg ending at vertex that
// forms the smallest angle to the splitter, and returns it unless some seg
// starting at vertex forms an even smaller one. Returns NO_INDEX if there is
// no such seg, or if vertex is already connected to vertex2 directly.
// Among segs forming equal angles, the one found first wins - lists are
// walked most recently added first
func (w *GLWork) CheckLoopStart(dx, dy Fixed, vertex, vertex2 uint32) uint32 {
	v := &w.Vertices[vertex]
	splitAngle := PointToAngle(float64(dx), float64(dy))

	// Find the seg ending at this vertex that forms the smallest angle
	// to the splitter
	bestang := ANGLE_MAX
	bestseg := NO_INDEX
	for segnum := v.segs2; segnum != NO_INDEX; segnum = w.Segs[segnum].nextforvert2 {
		seg := &w.Segs[segnum]
		sv := &w.Vertices[seg.V1]
		diff := splitAngle - vertexAngle(v, sv)
		if diff < ANGLE_EPSILON &&
			PointOnSide(sv.X, sv.Y, v.X, v.Y, dx, dy) == 0 {
			// Seg lies right on the splitter, don't count it
			continue
		}
		if bestseg == NO_INDEX || diff < bestang {
			bestang = diff
			bestseg = segnum
		}
	}
	if bestseg == NO_INDEX {
		return NO_INDEX
	}

	// Now make sure there are no segs starting at this vertex that form
	// an even smaller angle to the splitter
	for segnum := v.segs; segnum != NO_INDEX; segnum = w.Segs[segnum].nextforvert {
		seg := &w.Segs[segnum]
		if seg.V2 == vertex2 {
			return NO_INDEX
		}
		diff := splitAngle - vertexAngle(v, &w.Vertices[seg.V2])
		if diff < bestang && seg.partner != bestseg {
			return NO_INDEX
		}
	}
	return bestseg
}

// CheckLoopEnd is the mirror of CheckLoopStart: it looks for the seg starting
// at vertex that forms the smallest angle to the reverse of the splitter,
// i.e. the seg that would follow a miniseg arriving at vertex
func (w *GLWork) CheckLoopEnd(dx, dy Fixed, vertex uint32) uint32 {
	v := &w.Vertices[vertex]
	splitAngle := PointToAngle(float64(dx), float64(dy)) + ANG180

	// Find the seg starting at this vertex that forms the smallest angle
	// to the splitter
	bestang := ANGLE_MAX
	bestseg := NO_INDEX
	for segnum := v.segs; segnum != NO_INDEX; segnum = w.Segs[segnum].nextforvert {
		seg := &w.Segs[segnum]
		diff := vertexAngle(v, &w.Vertices[seg.V2]) - splitAngle
		if diff < ANGLE_EPSILON {
			// Seg leaves along the splitter (seg.V1 is vertex itself, so it is
			// always on the splitter line), don't count it
			continue
		}
		if bestseg == NO_INDEX || diff < bestang {
			bestang = diff
			bestseg = segnum
		}
	}
	if bestseg == NO_INDEX {
		return NO_INDEX
	}

	// Now make sure there are no segs ending at this vertex that form
	// an even smaller angle to the splitter
	for segnum := v.segs2; segnum != NO_INDEX; segnum = w.Segs[segnum].nextforvert2 {
		seg := &w.Segs[segnum]
		diff := vertexAngle(v, &w.Vertices[seg.V1]) - splitAngle
		if diff < bestang && seg.partner != bestseg {
			return NO_INDEX
		}
	}
	return bestseg
}
