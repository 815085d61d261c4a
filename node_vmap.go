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
package main

// VertexMap utils go here

const VMAP_BLOCK_SHIFT = 8 + FRACBITS

const VMAP_BLOCK_SIZE = 1 << VMAP_BLOCK_SHIFT

const VMAP_SAFE_MARGIN = 2 // map units

// ZDBSP: "vertices within this distance of each other are considered to be
// the same vertex". Fixed point units
const VERTEX_EPSILON = 6

// VertexMap is a ZDBSP thingy. Allows to lookup close-enough vertices among
// existing ones to the one created as the result of intersection, so that
// segs split by the same splitter at (almost) the same point share a vertex,
// and so that the vertex is found as the same event on the splitter
type VertexMap struct {
	w          *GLWork
	Grid       [][]uint32 // vertex indices per block
	BlocksWide int
	BlocksTall int
	MinX, MinY int64 // fixed point, but wider: the margin can exceed Fixed
	MaxX, MaxY int64
}

// CreateVertexMap creates a map covering the specified bounds, given in map
// units
func CreateVertexMap(w *GLWork, minx, miny, maxx, maxy int) *VertexMap {
	// Vertices created by splits can land slightly outside the bounds due to
	// rounding
	minx = minx - VMAP_SAFE_MARGIN
	miny = miny - VMAP_SAFE_MARGIN
	maxx = maxx + VMAP_SAFE_MARGIN
	maxy = maxy + VMAP_SAFE_MARGIN

	vm := &VertexMap{
		w:    w,
		MinX: int64(minx) << FRACBITS,
		MinY: int64(miny) << FRACBITS,
		BlocksWide: int(((int64(maxx-minx+1) << FRACBITS) +
			VMAP_BLOCK_SIZE - 1) >> VMAP_BLOCK_SHIFT),
		BlocksTall: int(((int64(maxy-miny+1) << FRACBITS) +
			VMAP_BLOCK_SIZE - 1) >> VMAP_BLOCK_SHIFT),
	}
	vm.MaxX = vm.MinX + int64(vm.BlocksWide)*VMAP_BLOCK_SIZE - 1
	vm.MaxY = vm.MinY + int64(vm.BlocksTall)*VMAP_BLOCK_SIZE - 1
	vm.Grid = make([][]uint32, vm.BlocksWide*vm.BlocksTall)
	return vm
}

func (vm *VertexMap) GetBlock(x, y int64) int {
	if x < vm.MinX || x > vm.MaxX || y < vm.MinY || y > vm.MaxY {
		vm.w.mlog.Verbose(1, "Vertex map index out of range, source values: x=%d, y=%d xmin,ymin=(%d,%d) xmax,ymax=(%d,%d)\n",
			x, y, vm.MinX, vm.MinY, vm.MaxX, vm.MaxY)
		// Keep working without panic, the clamped block is as good as any.
		// Accumulating such vertices in border blocks can cause slowdown, but
		// not malfunction
		x = clampInt64(x, vm.MinX, vm.MaxX)
		y = clampInt64(y, vm.MinY, vm.MaxY)
	}
	return int((x-vm.MinX)>>VMAP_BLOCK_SHIFT) +
		int((y-vm.MinY)>>VMAP_BLOCK_SHIFT)*vm.BlocksWide
}

func clampInt64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SelectVertexExact returns the vertex at exactly (x, y), creating it if it
// doesn't exist yet
func (vm *VertexMap) SelectVertexExact(x, y Fixed) uint32 {
	block := vm.Grid[vm.GetBlock(int64(x), int64(y))]
	for _, it := range block {
		v := &vm.w.Vertices[it]
		if v.X == x && v.Y == y {
			return it
		}
	}
	return vm.insertVertex(vm.w.AddVertex(x, y))
}

// SelectVertexClose returns a vertex within VERTEX_EPSILON of (x, y),
// creating one at (x, y) if there is none
func (vm *VertexMap) SelectVertexClose(x, y Fixed) uint32 {
	block := vm.Grid[vm.GetBlock(int64(x), int64(y))]
	for _, it := range block {
		v := &vm.w.Vertices[it]
		if absInt64(int64(v.X)-int64(x)) < VERTEX_EPSILON &&
			absInt64(int64(v.Y)-int64(y)) < VERTEX_EPSILON {
			return it
		}
	}
	return vm.insertVertex(vm.w.AddVertex(x, y))
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// RegisterVertex makes an already existing vertex visible to lookups
func (vm *VertexMap) RegisterVertex(idx uint32) {
	vm.insertVertex(idx)
}

func (vm *VertexMap) insertVertex(idx uint32) uint32 {
	// If a vertex is near a block boundary, then it will be inserted on
	// both sides of the boundary so that SelectVertexClose can find
	// it by checking in only one block.
	x := int64(vm.w.Vertices[idx].X)
	y := int64(vm.w.Vertices[idx].Y)
	minx := vm.MinX
	if minx < (x - VERTEX_EPSILON) {
		minx = x - VERTEX_EPSILON
	}
	maxx := vm.MaxX
	if maxx > (x + VERTEX_EPSILON) {
		maxx = x + VERTEX_EPSILON
	}
	miny := vm.MinY
	if miny < (y - VERTEX_EPSILON) {
		miny = y - VERTEX_EPSILON
	}
	maxy := vm.MaxY
	if maxy > (y + VERTEX_EPSILON) {
		maxy = y + VERTEX_EPSILON
	}
	blk := [4]int{vm.GetBlock(minx, miny),
		vm.GetBlock(maxx, miny),
		vm.GetBlock(minx, maxy),
		vm.GetBlock(maxx, maxy)}
	blcount := [4]int{
		len(vm.Grid[blk[0]]),
		len(vm.Grid[blk[1]]),
		len(vm.Grid[blk[2]]),
		len(vm.Grid[blk[3]])}
	for i := 0; i < 4; i++ {
		if len(vm.Grid[blk[i]]) == blcount[i] {
			vm.Grid[blk[i]] = append(vm.Grid[blk[i]], idx)
		}
	}
	return idx
}

// PopulateVertexMap registers all vertices of the session
func PopulateVertexMap(vm *VertexMap) {
	for i := range vm.w.Vertices {
		vm.RegisterVertex(uint32(i))
	}
}
