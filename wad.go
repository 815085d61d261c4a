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

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Lumps that may follow a level marker. The first lump not in this list ends
// the level
var LUMP_SORT_ORDER = []string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS", "SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP", "BEHAVIOR", "SCRIPTS"}

// Lumps the nodes builder can't do without
var LUMP_MUSTEXIST = []string{"LINEDEFS", "SIDEDEFS", "VERTEXES", "SECTORS"}

var ErrNotAWad = errors.New("not a wad file")

type LevelBounds struct {
	Xmin int16
	Ymin int16
	Xmax int16
	Ymax int16
}

// Directory indices of a level's lumps, -1 if absent
type LevelLumps struct {
	Name            string
	MarkerIdx       int
	LevelFormat     int
	VerticesLumpIdx int
	LinedefsLumpIdx int
	SidedefsLumpIdx int
	SectorsLumpIdx  int
}

// Level data relevant to nodes building
type LevelGeometry struct {
	Name     string
	Vertices []Vertex
	Linedefs []Linedef
	Sidedefs []Sidedef
	Sectors  []Sector
}

// ByteSliceBeforeTerm returns a part of the original bytes
// excluding everything that starts with zero-byte character.
// This allows string operations (such as pattern matching) to be performed
// correctly on returned value
func ByteSliceBeforeTerm(b []byte) []byte {
	i := bytes.IndexByte(b, 0)
	if i == -1 {
		return b
	} else {
		return b[:i]
	}
}

// ReadWadDirectory reads the header and the whole directory at once
func ReadWadDirectory(f io.ReaderAt) (*WadHeader, []LumpEntry, error) {
	wh := new(WadHeader)
	err := binary.Read(io.NewSectionReader(f, 0, WAD_HEADER_SIZE),
		binary.LittleEndian, wh)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't read file header: %w", err)
	}
	if wh.MagicSig != IWAD_MAGIC_SIG && wh.MagicSig != PWAD_MAGIC_SIG {
		return nil, nil, ErrNotAWad
	}
	le := make([]LumpEntry, wh.LumpCount, wh.LumpCount)
	dirSize := int64(wh.LumpCount) * LUMP_ENTRY_SIZE
	err = binary.Read(io.NewSectionReader(f, int64(wh.DirectoryStart), dirSize),
		binary.LittleEndian, le)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read lump info from a wad's directory (%d lumps at %d byte offset): %w",
			wh.LumpCount, wh.DirectoryStart, err)
	}
	return wh, le, nil
}

func isLevelLump(name string) bool {
	for _, s := range LUMP_SORT_ORDER {
		if s == name {
			return true
		}
	}
	return false
}

// FindLevels identifies levels in the directory. Levels filtered out by
// configuration are not included
func FindLevels(le []LumpEntry) []LevelLumps {
	levels := make([]LevelLumps, 0)
	var cur *LevelLumps
	for i, entry := range le {
		// exclude zero byte and all that follows it from string for pattern
		// matching to work correctly
		bname := ByteSliceBeforeTerm(entry.Name[:])
		if IsALevel(bname) {
			cur = nil
			if !CanBuildThisLevel(bname) {
				continue
			}
			levels = append(levels, LevelLumps{
				Name:            string(bname),
				MarkerIdx:       i,
				LevelFormat:     FORMAT_DOOM,
				VerticesLumpIdx: -1,
				LinedefsLumpIdx: -1,
				SidedefsLumpIdx: -1,
				SectorsLumpIdx:  -1,
			})
			cur = &levels[len(levels)-1]
			continue
		}
		if cur == nil {
			continue
		}
		name := string(bname)
		if !isLevelLump(name) {
			cur = nil
			continue
		}
		var target *int
		switch name {
		case "VERTEXES":
			target = &cur.VerticesLumpIdx
		case "LINEDEFS":
			target = &cur.LinedefsLumpIdx
		case "SIDEDEFS":
			target = &cur.SidedefsLumpIdx
		case "SECTORS":
			target = &cur.SectorsLumpIdx
		case "BEHAVIOR":
			cur.LevelFormat = FORMAT_HEXEN
		}
		if target == nil {
			continue
		}
		if *target != -1 {
			Log.Error("Level %s has one or more duplicate of lump %s - only the first one is used\n",
				cur.Name, name)
			continue
		}
		*target = i
	}
	return levels
}

// Returns whether a level should be built based on current configuration.
// Level name in configuration must be upper case, or this will fail to work as
// intended
func CanBuildThisLevel(levelName []byte) bool {
	if config.MapName == "" { // reference to global: config
		return true
	}
	return bytes.Equal([]byte(config.MapName), levelName)
}

// Missing returns the first mandatory lump the level lacks, or empty string
func (lvl *LevelLumps) Missing() string {
	idxs := []int{lvl.LinedefsLumpIdx, lvl.SidedefsLumpIdx, lvl.VerticesLumpIdx,
		lvl.SectorsLumpIdx}
	for i, idx := range idxs {
		if idx == -1 {
			return LUMP_MUSTEXIST[i]
		}
	}
	return ""
}

func readLump(f io.ReaderAt, e LumpEntry, data interface{}) error {
	r := io.NewSectionReader(f, int64(e.FilePos), int64(e.Size))
	return binary.Read(r, binary.LittleEndian, data)
}

// LoadLevelGeometry reads vertices, linedefs, sidedefs and sectors of the
// level. Hexen format linedefs are converted to Doom format ones
func LoadLevelGeometry(f io.ReaderAt, le []LumpEntry, lvl *LevelLumps) (*LevelGeometry, error) {
	if missing := lvl.Missing(); missing != "" {
		return nil, fmt.Errorf("level %s is not valid: missing lump %s",
			lvl.Name, missing)
	}
	geom := &LevelGeometry{Name: lvl.Name}

	e := le[lvl.VerticesLumpIdx]
	geom.Vertices = make([]Vertex, e.Size/DOOM_VERTEX_SIZE)
	if err := readLump(f, e, geom.Vertices); err != nil {
		return nil, fmt.Errorf("level %s: reading VERTEXES: %w", lvl.Name, err)
	}

	e = le[lvl.LinedefsLumpIdx]
	if lvl.LevelFormat == FORMAT_HEXEN {
		hexenLinedefs := make([]HexenLinedef, e.Size/HEXEN_LINEDEF_SIZE)
		if err := readLump(f, e, hexenLinedefs); err != nil {
			return nil, fmt.Errorf("level %s: reading LINEDEFS: %w", lvl.Name, err)
		}
		geom.Linedefs = make([]Linedef, len(hexenLinedefs))
		for i := range hexenLinedefs {
			geom.Linedefs[i] = hexenLinedefs[i].ToLinedef()
		}
	} else {
		geom.Linedefs = make([]Linedef, e.Size/DOOM_LINEDEF_SIZE)
		if err := readLump(f, e, geom.Linedefs); err != nil {
			return nil, fmt.Errorf("level %s: reading LINEDEFS: %w", lvl.Name, err)
		}
	}

	e = le[lvl.SidedefsLumpIdx]
	geom.Sidedefs = make([]Sidedef, e.Size/DOOM_SIDEDEF_SIZE)
	if err := readLump(f, e, geom.Sidedefs); err != nil {
		return nil, fmt.Errorf("level %s: reading SIDEDEFS: %w", lvl.Name, err)
	}

	e = le[lvl.SectorsLumpIdx]
	geom.Sectors = make([]Sector, e.Size/DOOM_SECTOR_SIZE)
	if err := readLump(f, e, geom.Sectors); err != nil {
		return nil, fmt.Errorf("level %s: reading SECTORS: %w", lvl.Name, err)
	}
	return geom, nil
}

// Sector on the given side, SECTOR_UNRESOLVED if there is no such side
func (geom *LevelGeometry) sidedefSector(sdef uint16) int32 {
	if sdef == SIDEDEF_NONE || int(sdef) >= len(geom.Sidedefs) {
		return SECTOR_UNRESOLVED
	}
	return int32(geom.Sidedefs[sdef].Sector)
}

func GetBounds(vertices []Vertex) LevelBounds {
	Xmin := int16(32767)
	Ymin := int16(32767)
	Xmax := int16(-32768)
	Ymax := int16(-32768)
	for _, v := range vertices {
		if v.XPos < Xmin {
			Xmin = v.XPos
		}
		if v.YPos < Ymin {
			Ymin = v.YPos
		}
		if v.XPos > Xmax {
			Xmax = v.XPos
		}
		if v.YPos > Ymax {
			Ymax = v.YPos
		}
	}
	return LevelBounds{
		Xmin: Xmin,
		Ymin: Ymin,
		Xmax: Xmax,
		Ymax: Ymax,
	}
}
