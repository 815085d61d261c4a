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

// glintersect
package main

// A seg lying on the splitter. Distance is that of its start vertex, Forward
// tells whether the seg points the same way as the splitter
type SplitSharer struct {
	Seg      uint32
	Distance float64
	Forward  bool
}

// AddIntersection records that vertex lies on the splitter and returns its
// signed distance from the splitter origin. Only ordering matters, so the
// distance is scaled by the (unnormalized) length of the splitter direction,
// and no sqrt is needed
func (w *GLWork) AddIntersection(node *GLNode, vertex uint32) float64 {
	v := &w.Vertices[vertex]
	dist := (float64(v.X)-float64(node.X))*float64(node.Dx) +
		(float64(v.Y)-float64(node.Y))*float64(node.Dy)

	if _, ok := w.Events.FindEvent(dist); !ok {
		w.Events.Insert(Event{
			Distance: dist,
			Vertex:   vertex,
		})
	}
	return dist
}

// FixSplitSharers splits segs on the splitter that span more than two events.
// Overlapping lines (Alien Vendetta is notorious for them) would otherwise get
// minisegs erroneously added for them, and partner information would be
// messed up in the produced tree. They'd still get split later, but too late.
// Each new piece goes right after the seg it was split from in whatever
// working set that seg belongs to
func (w *GLWork) FixSplitSharers(node *GLNode) {
	for i := 0; i < len(w.SplitSharers); i++ {
		sharer := w.SplitSharers[i]
		seg := sharer.Seg
		v2 := w.Segs[seg].V2
		event, ok := w.Events.FindEvent(sharer.Distance)
		if !ok { // should not happen
			w.mlog.Verbose(2, "No event for split sharer seg %d at distance %v\n",
				seg, sharer.Distance)
			continue
		}

		step := w.Events.Predecessor
		if sharer.Forward {
			step = w.Events.Successor
		}
		event, ok = step(event)
		if !ok {
			continue
		}
		next, hasNext := step(event)

		for hasNext && event.Vertex != v2 {
			newseg := w.SplitSeg(seg, event.Vertex)

			w.Segs[newseg].next = w.Segs[seg].next
			w.Segs[seg].next = newseg

			partner := w.Segs[seg].partner
			if partner != NO_INDEX {
				endpartner := w.SplitSeg(partner, event.Vertex)

				w.Segs[endpartner].next = w.Segs[partner].next
				w.Segs[partner].next = endpartner

				// seg: v1->split mirrors endpartner: split->v1
				// newseg: split->v2 mirrors partner: v2->split
				w.Segs[seg].partner = endpartner
				w.Segs[endpartner].partner = seg
				w.Segs[partner].partner = newseg
				w.Segs[newseg].partner = partner
			}

			seg = newseg
			event = next
			next, hasNext = step(next)
		}
	}
}
