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

// glsplit
package main

import (
	"math"
)

// Dividing a set of segs by a splitter, GL nodes way: the splitter's
// intersections are recorded as events, and minisegs get added along it

const ( // ClassifyLine results
	CLASSIFY_SPLIT = -1 // seg crosses the splitter and must be split
	CLASSIFY_FRONT = 0
	CLASSIFY_BACK  = 1
)

// NodeFromSeg makes a splitter out of a seg. The direction vector is the seg's
// own, scaled down if it doesn't fit in Fixed (only its direction matters)
func (w *GLWork) NodeFromSeg(seg uint32) GLNode {
	s := &w.Segs[seg]
	v1 := &w.Vertices[s.V1]
	v2 := &w.Vertices[s.V2]
	dx := int64(v2.X) - int64(v1.X)
	dy := int64(v2.Y) - int64(v1.Y)
	for dx > math.MaxInt32 || dx < math.MinInt32 ||
		dy > math.MaxInt32 || dy < math.MinInt32 {
		dx /= 2
		dy /= 2
	}
	return GLNode{
		X:  v1.X,
		Y:  v1.Y,
		Dx: Fixed(dx),
		Dy: Fixed(dy),
	}
}

// ClassifyLine tells where the seg goes in respect to the splitter: front,
// back or split (see CLASSIFY_* constants). sidev receives the side of each
// vertex as returned by PointOnSide. A seg lying on the splitter goes to
// front if it faces the same direction as the splitter, and to back otherwise
func (w *GLWork) ClassifyLine(node *GLNode, seg uint32) (int, [2]int) {
	s := &w.Segs[seg]
	v1 := &w.Vertices[s.V1]
	v2 := &w.Vertices[s.V2]
	var sidev [2]int
	sidev[0] = PointOnSide(v1.X, v1.Y, node.X, node.Y, node.Dx, node.Dy)
	sidev[1] = PointOnSide(v2.X, v2.Y, node.X, node.Y, node.Dx, node.Dy)
	return classifySides(node, v1, v2, sidev), sidev
}

func classifySides(node *GLNode, v1, v2 *GLVertex, sidev [2]int) int {
	if sidev[0] <= 0 && sidev[1] <= 0 {
		if sidev[0] == 0 && sidev[1] == 0 {
			dot := (float64(v2.X)-float64(v1.X))*float64(node.Dx) +
				(float64(v2.Y)-float64(v1.Y))*float64(node.Dy)
			if dot > 0 {
				return CLASSIFY_FRONT
			}
			return CLASSIFY_BACK
		}
		return CLASSIFY_FRONT
	}
	if sidev[0] >= 0 && sidev[1] >= 0 {
		return CLASSIFY_BACK
	}
	return CLASSIFY_SPLIT
}

// InterceptVector returns the fraction along the seg (0 at V1, 1 at V2) where
// the splitter crosses it
func (w *GLWork) InterceptVector(node *GLNode, seg uint32) float64 {
	s := &w.Segs[seg]
	v2x := float64(w.Vertices[s.V1].X)
	v2y := float64(w.Vertices[s.V1].Y)
	v2dx := float64(w.Vertices[s.V2].X) - v2x
	v2dy := float64(w.Vertices[s.V2].Y) - v2y
	v1dx := float64(node.Dx)
	v1dy := float64(node.Dy)

	den := v1dy*v2dx - v1dx*v2dy
	if den == 0.0 {
		return 0 // parallel
	}

	v1x := float64(node.X)
	v1y := float64(node.Y)
	num := (v1x-v2x)*v1dy + (v2y-v1y)*v1dx
	return num / den
}

// SplitSegs divides the set (chain of segs linked via next) by the splitter
// into front and back sets, splitting segs that cross it. splitseg is the seg
// the splitter came from, or NO_INDEX.
// All vertices found on the splitter are recorded as events, and once the
// whole set is divided, segs overlapping the splitter get fixed and minisegs
// get added to both sets along the splitter
func (w *GLWork) SplitSegs(set uint32, node *GLNode, splitseg uint32) (uint32, uint32) {
	front := NO_INDEX
	back := NO_INDEX
	w.Events.Reset()
	w.SplitSharers = w.SplitSharers[:0]

	for set != NO_INDEX {
		seg := set
		next := w.Segs[seg].next
		side, sidev := w.ClassifyLine(node, seg)

		switch side {
		case CLASSIFY_FRONT:
			w.Segs[seg].next = front
			front = seg
		case CLASSIFY_BACK:
			w.Segs[seg].next = back
			back = seg
		default:
			vertnum := w.splitPoint(node, seg)
			s := &w.Segs[seg]
			if vertnum == s.V1 || vertnum == s.V2 {
				// Split point got snapped to an endpoint: the seg only touches
				// the splitter, so it is not split at all
				w.mlog.Verbose(2, "Split point of seg %d is its own endpoint %d\n",
					seg, vertnum)
				if vertnum == s.V1 {
					sidev[0] = 0
				} else {
					sidev[1] = 0
				}
				if sidev[0]+sidev[1] > 0 {
					side = CLASSIFY_BACK
					s.next = back
					back = seg
				} else {
					side = CLASSIFY_FRONT
					s.next = front
					front = seg
				}
				break
			}
			tail := w.SplitSeg(seg, vertnum)
			if sidev[0] > 0 {
				// start is behind, so the tail is in front
				w.Segs[tail].next = front
				front = tail
				w.Segs[seg].next = back
				back = seg
			} else {
				w.Segs[seg].next = front
				front = seg
				w.Segs[tail].next = back
				back = tail
			}
			// Also split the seg on the other side. Its new piece stays in
			// the same set as the partner, because the partner has not been
			// considered for splitting yet: if it had been, this seg would
			// have been split already. The partner might even be in a
			// different set entirely, so its pieces must not be moved to
			// the output sets
			if partner := w.Segs[seg].partner; partner != NO_INDEX {
				ptail := w.SplitSeg(partner, vertnum)
				w.Segs[ptail].next = w.Segs[partner].next
				w.Segs[partner].next = ptail
				w.Segs[seg].partner = ptail
				w.Segs[ptail].partner = seg
				w.Segs[partner].partner = tail
				w.Segs[tail].partner = partner
			}
			w.AddIntersection(node, vertnum)
		}

		if side >= 0 {
			s := &w.Segs[seg]
			if sidev[0] == 0 {
				dist1 := w.AddIntersection(node, s.V1)
				if sidev[1] == 0 {
					dist2 := w.AddIntersection(node, s.V2)
					w.SplitSharers = append(w.SplitSharers, SplitSharer{
						Seg:      seg,
						Distance: dist1,
						Forward:  dist2 > dist1,
					})
				}
			} else if sidev[1] == 0 {
				w.AddIntersection(node, s.V2)
			}
		}

		set = next
	}

	w.FixSplitSharers(node)
	w.AddMinisegs(node, splitseg, &front, &back)
	return front, back
}

// Vertex where the splitter crosses the seg. Reuses an existing vertex if one
// is close enough
func (w *GLWork) splitPoint(node *GLNode, seg uint32) uint32 {
	frac := w.InterceptVector(node, seg)
	s := &w.Segs[seg]
	v1 := &w.Vertices[s.V1]
	v2 := &w.Vertices[s.V2]
	x := float64(v1.X) + frac*(float64(v2.X)-float64(v1.X))
	y := float64(v1.Y) + frac*(float64(v2.Y)-float64(v1.Y))
	fx := Fixed(math.Round(x))
	fy := Fixed(math.Round(y))
	if w.vertexMap == nil {
		return w.AddVertex(fx, fy)
	}
	return w.vertexMap.SelectVertexClose(fx, fy)
}
