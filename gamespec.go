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

// Wad specifications for Doom-engine family of games
// (including Heretic, Hexen, etc.), limited to what is needed to read level
// geometry
package main

import (
	"regexp"
)

// Both brought in accordance with Prboom-Plus 2.6.1um map name ranges, except
// that E1M0x is possible (when it is probably shouldn't be)
var MAP_SEQUEL *regexp.Regexp = regexp.MustCompile(`^MAP[0-9][0-9]$`)
var MAP_ExMx *regexp.Regexp = regexp.MustCompile(`^E[1-9]M[0-9][0-9]?$`)

// This constant group is for internal program usage only
const (
	FORMAT_DOOM = iota
	FORMAT_HEXEN
)

const IWAD_MAGIC_SIG = uint32(0x44415749) // ASCII - 'IWAD'
const PWAD_MAGIC_SIG = uint32(0x44415750) // ASCII - 'PWAD'

const LF_TWOSIDED = uint16(0x0004)

const SIDEDEF_NONE = uint16(0xFFFF)

const DOOM_VERTEX_SIZE = 4    // Size of "Vertex" struct
const DOOM_LINEDEF_SIZE = 14  // Size of "Linedef" struct
const HEXEN_LINEDEF_SIZE = 16 // Size of "HexenLinedef" struct
const DOOM_SIDEDEF_SIZE = 30  // Size of "Sidedef" struct
const DOOM_SECTOR_SIZE = 26   // Size of "Sector" struct
const LUMP_ENTRY_SIZE = 16    // Size of "LumpEntry" struct
const WAD_HEADER_SIZE = 12    // Size of "WadHeader" struct

// Wad header, 12 bytes.
type WadHeader struct {
	MagicSig       uint32
	LumpCount      uint32 // vanilla treats this as signed int32
	DirectoryStart uint32 // vanilla treats this as signed int32
}

// Lump entries listed one after another comprise the directory,
// the first such lump entry is found at WadHeader.DirectoryStart offset into
// the wad file.
// Each lump entry is 16 bytes long
type LumpEntry struct {
	FilePos uint32 // vanilla treats this as signed int32
	Size    uint32 // vanilla treats this as signed int32
	Name    [8]byte
}

// Doom/Heretic linedef format
type Linedef struct {
	// Vanilla treats ALL fields as signed int16
	StartVertex uint16
	EndVertex   uint16
	Flags       uint16
	Action      uint16
	Tag         uint16
	FrontSdef   uint16 // Front Sidedef number
	BackSdef    uint16 // Back Sidedef number (0xFFFF special value for one-sided line)
}

// Hexen linedef format. Only converted to Linedef, the nodes builder
// doesn't care about action arguments
type HexenLinedef struct {
	StartVertex uint16
	EndVertex   uint16
	Flags       uint16
	Action      uint8
	Args        [5]uint8
	FrontSdef   uint16
	BackSdef    uint16
}

type Sidedef struct {
	XOffset int16
	YOffset int16
	UpName  [8]byte // name of upper texture
	LoName  [8]byte // name of lower texture
	MidName [8]byte // name of middle texture
	Sector  uint16  // sector number; vanilla treats this as signed int16
}

// A Vertex is a coordinate on the map, and is used by linedefs as starting
// (ending) point. Vertices created by splitting segs are fixed point and live
// only in the nodes builder
type Vertex struct {
	XPos int16
	YPos int16
}

type Sector struct {
	FloorHeight int16
	CeilHeight  int16
	FloorName   [8]byte
	CeilName    [8]byte
	LightLevel  uint16
	Special     uint16
	Tag         uint16
}

// Returns whether the string in lumpName represents Doom level marker,
// i.e. MAP02, E3M1
func IsALevel(lumpName []byte) bool {
	return MAP_SEQUEL.Match(lumpName) || MAP_ExMx.Match(lumpName)
}

func (hl *HexenLinedef) ToLinedef() Linedef {
	return Linedef{
		StartVertex: hl.StartVertex,
		EndVertex:   hl.EndVertex,
		Flags:       hl.Flags,
		Action:      uint16(hl.Action),
		Tag:         uint16(hl.Args[0]),
		FrontSdef:   hl.FrontSdef,
		BackSdef:    hl.BackSdef,
	}
}
