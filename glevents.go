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

// glevents
package main

import (
	"github.com/google/btree"
)

// Intersections of segs with the splitter, ordered by signed distance along
// the splitter. Distances are compared exactly, without any epsilon: all of
// them come from the same formula computed on the same splitter (see
// AddIntersection), so equal points produce equal distances

// B-tree degree. Events per split rarely exceed a few hundred, flat-ish nodes
// make successor/predecessor walks cheap
const EVENT_TREE_DEGREE = 8

type Event struct {
	Distance float64
	Vertex   uint32
}

type EventTree struct {
	tree *btree.BTreeG[Event]
}

func eventLess(a, b Event) bool {
	return a.Distance < b.Distance
}

func CreateEventTree() *EventTree {
	return &EventTree{
		tree: btree.NewG[Event](EVENT_TREE_DEGREE, eventLess),
	}
}

// FindEvent returns the event at exactly this distance, if any
func (t *EventTree) FindEvent(dist float64) (Event, bool) {
	return t.tree.Get(Event{Distance: dist})
}

// Insert adds an event. An existing event at the same distance is replaced,
// callers that want the first vertex to stick use FindEvent beforehand
func (t *EventTree) Insert(ev Event) {
	t.tree.ReplaceOrInsert(ev)
}

// Minimum returns the event with the smallest distance
func (t *EventTree) Minimum() (Event, bool) {
	return t.tree.Min()
}

// Successor returns the event immediately after ev along the splitter
func (t *EventTree) Successor(ev Event) (Event, bool) {
	var res Event
	found := false
	t.tree.AscendGreaterOrEqual(ev, func(item Event) bool {
		if item.Distance > ev.Distance {
			res = item
			found = true
			return false
		}
		return true
	})
	return res, found
}

// Predecessor returns the event immediately before ev along the splitter
func (t *EventTree) Predecessor(ev Event) (Event, bool) {
	var res Event
	found := false
	t.tree.DescendLessOrEqual(ev, func(item Event) bool {
		if item.Distance < ev.Distance {
			res = item
			found = true
			return false
		}
		return true
	})
	return res, found
}

func (t *EventTree) Len() int {
	return t.tree.Len()
}

// Reset removes all events, keeping allocated nodes for the next splitter
func (t *EventTree) Reset() {
	t.tree.Clear(true)
}

// Events lists all events in ascending order. Debugging and tests
func (t *EventTree) Events() []Event {
	res := make([]Event, 0, t.tree.Len())
	t.tree.Ascend(func(item Event) bool {
		res = append(res, item)
		return true
	})
	return res
}
