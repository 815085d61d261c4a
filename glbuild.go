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

// glbuild
package main

import (
	"fmt"
)

// Recursion depth past which sets are no longer partitioned. Legit levels
// don't come anywhere close, this only stops runaway recursion on degenerate
// input
const MAX_BUILD_DEPTH = 8192

// BuildGLNodes partitions the level into convex subsectors, closing each with
// minisegs along the splitters. The returned session holds the arenas, the
// subsectors and the totals
func BuildGLNodes(geom *LevelGeometry, mlog *MiniLogger, diag GLDiagnostics) *GLWork {
	w := CreateGLWork(mlog, diag)
	set := w.CreateSegs(geom)
	if set == NO_INDEX {
		w.mlog.Printf("%s: no segs, nothing to build\n", geom.Name)
		return w
	}
	bounds := GetBounds(geom.Vertices)
	w.vertexMap = CreateVertexMap(w, int(bounds.Xmin), int(bounds.Ymin),
		int(bounds.Xmax), int(bounds.Ymax))
	PopulateVertexMap(w.vertexMap)
	w.BuildTree(set, 0)
	w.FinishSubsectors(config.CheckClosure)
	return w
}

// CreateSegs makes one seg per sidedef of every linedef: front seg follows the
// linedef direction, back seg goes the opposite way and becomes the partner
// of the front one. Returns the head of the chain of all segs, in linedef order
func (w *GLWork) CreateSegs(geom *LevelGeometry) uint32 {
	for _, v := range geom.Vertices {
		w.AddVertex(ToFixed(int(v.XPos)), ToFixed(int(v.YPos)))
	}
	head := NO_INDEX
	tail := NO_INDEX
	addToChain := func(seg uint32) {
		if tail == NO_INDEX {
			head = seg
		} else {
			w.Segs[tail].next = seg
		}
		tail = seg
	}
	numVerts := len(geom.Vertices)
	for i, line := range geom.Linedefs {
		if i >= int(LINEDEF_NONE) {
			// Seg's linedef number can't represent it, and 0xFFFF marks
			// minisegs
			w.mlog.Printf("Linedefs from %d onward can't be addressed, %d skipped\n",
				i, len(geom.Linedefs)-i)
			break
		}
		if int(line.StartVertex) >= numVerts || int(line.EndVertex) >= numVerts {
			w.mlog.Printf("Linedef %d references non-existent vertex, skipping\n", i)
			continue
		}
		sv := uint32(line.StartVertex)
		ev := uint32(line.EndVertex)
		if w.Vertices[sv].X == w.Vertices[ev].X &&
			w.Vertices[sv].Y == w.Vertices[ev].Y {
			w.mlog.Verbose(1, "Linedef %d has zero length, skipping\n", i)
			continue
		}
		fsec := geom.sidedefSector(line.FrontSdef)
		bsec := geom.sidedefSector(line.BackSdef)
		front := NO_INDEX
		if fsec != SECTOR_UNRESOLVED {
			front = w.AddSeg(GLSeg{
				V1:          sv,
				V2:          ev,
				Linedef:     uint16(i),
				Sidedef:     line.FrontSdef,
				frontsector: fsec,
				backsector:  bsec,
				planenum:    int32(i),
			})
			addToChain(front)
		} else {
			w.mlog.Verbose(1, "Linedef %d has no front sidedef\n", i)
		}
		if bsec != SECTOR_UNRESOLVED {
			back := w.AddSeg(GLSeg{
				V1:          ev,
				V2:          sv,
				Linedef:     uint16(i),
				Sidedef:     line.BackSdef,
				frontsector: bsec,
				backsector:  fsec,
				planenum:    int32(i),
			})
			addToChain(back)
			if front != NO_INDEX {
				w.SetPartners(front, back)
			}
		}
	}
	return head
}

// PickSplitter returns the first seg in the set whose line has some vertex of
// the set strictly behind it, or NO_INDEX if there is none: then every seg
// faces the interior and the set is convex
func (w *GLWork) PickSplitter(set uint32) uint32 {
	for s := set; s != NO_INDEX; s = w.Segs[s].next {
		node := w.NodeFromSeg(s)
		if node.Dx == 0 && node.Dy == 0 {
			continue
		}
		for t := set; t != NO_INDEX; t = w.Segs[t].next {
			v1 := &w.Vertices[w.Segs[t].V1]
			v2 := &w.Vertices[w.Segs[t].V2]
			if PointOnSide(v1.X, v1.Y, node.X, node.Y, node.Dx, node.Dy) > 0 ||
				PointOnSide(v2.X, v2.Y, node.X, node.Y, node.Dx, node.Dy) > 0 {
				return s
			}
		}
	}
	return NO_INDEX
}

// BuildTree partitions the set recursively until every part is convex, then
// records the parts as subsectors
func (w *GLWork) BuildTree(set uint32, depth int) {
	if depth > w.totals.maxDepth {
		w.totals.maxDepth = depth
	}
	splitseg := NO_INDEX
	if depth < MAX_BUILD_DEPTH {
		splitseg = w.PickSplitter(set)
	} else {
		w.mlog.Printf("Maximum depth %d reached, a subsector might not be convex\n",
			MAX_BUILD_DEPTH)
	}
	if splitseg == NO_INDEX {
		w.createSubsector(set)
		return
	}

	node := w.NodeFromSeg(splitseg)
	w.mlog.Verbose(2, "Partition at depth %d: seg %d (%d,%d)+(%d,%d)\n", depth,
		splitseg, node.X.Int(), node.Y.Int(), node.Dx.Int(), node.Dy.Int())
	front, back := w.SplitSegs(set, &node, splitseg)
	if front == NO_INDEX || back == NO_INDEX {
		// Picked splitter has points behind, so this shouldn't happen.
		// Accept whatever side is not empty as is, rather than loop forever
		w.mlog.Verbose(1, "Splitter from seg %d left one side empty\n", splitseg)
		if front != NO_INDEX {
			w.createSubsector(front)
		}
		if back != NO_INDEX {
			w.createSubsector(back)
		}
		return
	}
	w.totals.numNodes++
	w.BuildTree(front, depth+1)
	w.BuildTree(back, depth+1)
}

func (w *GLWork) createSubsector(set uint32) {
	w.subsectors = append(w.subsectors, GLSubsector{head: set})
}

// FinishSubsectors resolves seg lists of all subsectors once the tree is
// complete, and optionally checks every subsector for closure
func (w *GLWork) FinishSubsectors(checkClosure bool) {
	w.ssegs = w.ssegs[:0]
	w.unclosed = w.unclosed[:0]
	w.totals.numSubsectors = len(w.subsectors)
	w.totals.numSegs = 0
	w.totals.numUnclosed = 0
	for i := range w.subsectors {
		ss := &w.subsectors[i]
		ss.FirstSeg = uint32(len(w.ssegs))
		for s := ss.head; s != NO_INDEX; s = w.Segs[s].next {
			w.ssegs = append(w.ssegs, s)
		}
		ss.NumSegs = uint32(len(w.ssegs)) - ss.FirstSeg
		w.totals.numSegs += int(ss.NumSegs)
		if !checkClosure {
			ss.Closed = true
			continue
		}
		ss.Closed = w.IsSubsectorClosed(ss)
		if !ss.Closed {
			w.unclosed = append(w.unclosed, uint32(i))
			w.totals.numUnclosed++
		}
	}
}

// SubsectorSegs returns seg indices of a subsector, valid after
// FinishSubsectors
func (w *GLWork) SubsectorSegs(ss *GLSubsector) []uint32 {
	return w.ssegs[ss.FirstSeg : ss.FirstSeg+ss.NumSegs]
}

// IsSubsectorClosed tells whether the segs of subsector form closed loops:
// every vertex starts as many segs as it ends
func (w *GLWork) IsSubsectorClosed(ss *GLSubsector) bool {
	balance := make(map[uint32]int)
	for _, s := range w.SubsectorSegs(ss) {
		balance[w.Segs[s].V1]++
		balance[w.Segs[s].V2]--
	}
	for _, b := range balance {
		if b != 0 {
			return false
		}
	}
	return len(balance) > 0
}

// Subsectors returns subsectors produced by the build
func (w *GLWork) Subsectors() []GLSubsector {
	return w.subsectors
}

// Unclosed returns indices of subsectors that failed the closure check
func (w *GLWork) Unclosed() []uint32 {
	return w.unclosed
}

func (w *GLWork) Totals() GLTotals {
	return w.totals
}

// DescribeSubsector prints subsector segs, one per line, for the report
func (w *GLWork) DescribeSubsector(idx uint32) string {
	ss := &w.subsectors[idx]
	s := fmt.Sprintf("subsector %d (%d segs):\n", idx, ss.NumSegs)
	for _, seg := range w.SubsectorSegs(ss) {
		sg := &w.Segs[seg]
		v1 := &w.Vertices[sg.V1]
		v2 := &w.Vertices[sg.V2]
		kind := "seg"
		if sg.IsMiniseg() {
			kind = "miniseg"
		}
		s += fmt.Sprintf("  %s %d: (%.3f,%.3f)-(%.3f,%.3f) sector %d\n", kind,
			seg, v1.X.Float(), v1.Y.Float(), v2.X.Float(), v2.Y.Float(),
			sg.frontsector)
	}
	return s
}

// Add accumulates totals of another level
func (t *GLTotals) Add(o GLTotals) {
	t.numNodes += o.numNodes
	t.numSubsectors += o.numSubsectors
	t.numSegs += o.numSegs
	t.numMinisegs += o.numMinisegs
	t.segSplits += o.segSplits
	t.numUnclosed += o.numUnclosed
	if o.maxDepth > t.maxDepth {
		t.maxDepth = o.maxDepth
	}
}

func (t GLTotals) String() string {
	return fmt.Sprintf("%d nodes, %d subsectors, %d segs (%d minisegs), %d seg splits, max depth %d, %d unclosed subsectors",
		t.numNodes, t.numSubsectors, t.numSegs, t.numMinisegs, t.segSplits,
		t.maxDepth, t.numUnclosed)
}
