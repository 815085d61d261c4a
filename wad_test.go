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

// wad_test.go
package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testLump struct {
	name string
	data interface{} // nil for markers
}

// buildTestWad lays out header, lump data and then the directory
func buildTestWad(t *testing.T, lumps []testLump) []byte {
	t.Helper()
	var data bytes.Buffer
	dir := make([]LumpEntry, 0, len(lumps))
	for _, l := range lumps {
		e := LumpEntry{FilePos: uint32(WAD_HEADER_SIZE + data.Len())}
		copy(e.Name[:], l.name)
		if l.data != nil {
			before := data.Len()
			if err := binary.Write(&data, binary.LittleEndian, l.data); err != nil {
				t.Fatalf("Couldn't encode lump %s: %s\n", l.name, err)
			}
			e.Size = uint32(data.Len() - before)
		}
		dir = append(dir, e)
	}
	var wad bytes.Buffer
	hdr := WadHeader{
		MagicSig:       PWAD_MAGIC_SIG,
		LumpCount:      uint32(len(dir)),
		DirectoryStart: uint32(WAD_HEADER_SIZE + data.Len()),
	}
	if err := binary.Write(&wad, binary.LittleEndian, hdr); err != nil {
		t.Fatalf("Couldn't encode header: %s\n", err)
	}
	wad.Write(data.Bytes())
	if err := binary.Write(&wad, binary.LittleEndian, dir); err != nil {
		t.Fatalf("Couldn't encode directory: %s\n", err)
	}
	return wad.Bytes()
}

func sampleGeometry(name string) *LevelGeometry {
	var floor [8]byte
	copy(floor[:], "FLAT1")
	var mid [8]byte
	copy(mid[:], "STARTAN3")
	return &LevelGeometry{
		Name:     name,
		Vertices: []Vertex{{0, 0}, {0, 64}, {64, 64}, {64, 0}},
		Linedefs: []Linedef{
			{StartVertex: 0, EndVertex: 1, Flags: 1, FrontSdef: 0, BackSdef: SIDEDEF_NONE},
			{StartVertex: 1, EndVertex: 2, Flags: 1, FrontSdef: 0, BackSdef: SIDEDEF_NONE},
			{StartVertex: 2, EndVertex: 3, Flags: 1, FrontSdef: 0, BackSdef: SIDEDEF_NONE},
			{StartVertex: 3, EndVertex: 0, Flags: 1, Action: 11, Tag: 3, FrontSdef: 0, BackSdef: SIDEDEF_NONE},
		},
		Sidedefs: []Sidedef{{MidName: mid}},
		Sectors: []Sector{{FloorHeight: 0, CeilHeight: 128, FloorName: floor,
			CeilName: floor, LightLevel: 160}},
	}
}

func levelLumps(geom *LevelGeometry) []testLump {
	return []testLump{
		{geom.Name, nil},
		{"THINGS", []byte{}},
		{"LINEDEFS", geom.Linedefs},
		{"SIDEDEFS", geom.Sidedefs},
		{"VERTEXES", geom.Vertices},
		{"SECTORS", geom.Sectors},
	}
}

func TestLoadLevelGeometry(t *testing.T) {
	geom := sampleGeometry("MAP01")
	lumps := append(levelLumps(geom), testLump{"ENDOOM", []byte{1, 2, 3}})
	lumps = append(lumps, levelLumps(sampleGeometry("MAP02"))...)
	r := bytes.NewReader(buildTestWad(t, lumps))

	_, le, err := ReadWadDirectory(r)
	if err != nil {
		t.Fatalf("ReadWadDirectory: %s\n", err)
	}
	levels := FindLevels(le)
	if len(levels) != 2 {
		t.Fatalf("Expected 2 levels, got %d\n", len(levels))
	}
	if levels[0].Name != "MAP01" || levels[1].Name != "MAP02" {
		t.Errorf("Wrong level names %s, %s\n", levels[0].Name, levels[1].Name)
	}
	if levels[0].LevelFormat != FORMAT_DOOM {
		t.Errorf("Level without BEHAVIOR must be in Doom format\n")
	}
	got, err := LoadLevelGeometry(r, le, &levels[0])
	if err != nil {
		t.Fatalf("LoadLevelGeometry: %s\n", err)
	}
	if diff := cmp.Diff(geom, got); diff != "" {
		t.Errorf("Geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadHexenLevel(t *testing.T) {
	hexen := []HexenLinedef{
		{StartVertex: 0, EndVertex: 1, Action: 80, Args: [5]uint8{7, 1, 0, 0, 0},
			FrontSdef: 0, BackSdef: SIDEDEF_NONE},
	}
	geom := sampleGeometry("MAP01")
	r := bytes.NewReader(buildTestWad(t, []testLump{
		{"MAP01", nil},
		{"THINGS", []byte{}},
		{"LINEDEFS", hexen},
		{"SIDEDEFS", geom.Sidedefs},
		{"VERTEXES", geom.Vertices},
		{"SECTORS", geom.Sectors},
		{"BEHAVIOR", []byte{0, 0, 0, 0}},
	}))

	_, le, err := ReadWadDirectory(r)
	if err != nil {
		t.Fatalf("ReadWadDirectory: %s\n", err)
	}
	levels := FindLevels(le)
	if len(levels) != 1 || levels[0].LevelFormat != FORMAT_HEXEN {
		t.Fatalf("Expected one Hexen level, got %+v\n", levels)
	}
	got, err := LoadLevelGeometry(r, le, &levels[0])
	if err != nil {
		t.Fatalf("LoadLevelGeometry: %s\n", err)
	}
	want := []Linedef{{StartVertex: 0, EndVertex: 1, Action: 80, Tag: 7,
		FrontSdef: 0, BackSdef: SIDEDEF_NONE}}
	if diff := cmp.Diff(want, got.Linedefs); diff != "" {
		t.Errorf("Linedefs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLevelMissingLump(t *testing.T) {
	geom := sampleGeometry("E1M1")
	lumps := levelLumps(geom)
	r := bytes.NewReader(buildTestWad(t, lumps[:len(lumps)-1]))

	_, le, err := ReadWadDirectory(r)
	if err != nil {
		t.Fatalf("ReadWadDirectory: %s\n", err)
	}
	levels := FindLevels(le)
	if len(levels) != 1 {
		t.Fatalf("Expected 1 level, got %d\n", len(levels))
	}
	if m := levels[0].Missing(); m != "SECTORS" {
		t.Errorf("Expected SECTORS missing, got %q\n", m)
	}
	_, err = LoadLevelGeometry(r, le, &levels[0])
	if err == nil || !strings.Contains(err.Error(), "missing lump SECTORS") {
		t.Errorf("Expected missing lump error, got %v\n", err)
	}
}

func TestReadWadDirectoryNotAWad(t *testing.T) {
	r := bytes.NewReader([]byte("JUNKJUNKJUNKJUNK"))
	_, _, err := ReadWadDirectory(r)
	if !errors.Is(err, ErrNotAWad) {
		t.Errorf("Expected ErrNotAWad, got %v\n", err)
	}
	_, _, err = ReadWadDirectory(bytes.NewReader([]byte("PWAD")))
	if err == nil || errors.Is(err, ErrNotAWad) {
		t.Errorf("Truncated header must give read error, got %v\n", err)
	}
}

func TestFindLevelsHonorsMapName(t *testing.T) {
	saved := config
	defer func() { config = saved }()
	config = DefaultConfig()
	config.MapName = "MAP02"

	lumps := append(levelLumps(sampleGeometry("MAP01")),
		levelLumps(sampleGeometry("MAP02"))...)
	r := bytes.NewReader(buildTestWad(t, lumps))
	_, le, err := ReadWadDirectory(r)
	if err != nil {
		t.Fatalf("ReadWadDirectory: %s\n", err)
	}
	levels := FindLevels(le)
	if len(levels) != 1 || levels[0].Name != "MAP02" {
		t.Fatalf("Expected only MAP02, got %+v\n", levels)
	}
	if levels[0].MarkerIdx != 6 {
		t.Errorf("Expected marker at 6, got %d\n", levels[0].MarkerIdx)
	}
}

func TestGetBounds(t *testing.T) {
	b := GetBounds([]Vertex{{-5, 10}, {20, -7}, {3, 3}})
	want := LevelBounds{Xmin: -5, Ymin: -7, Xmax: 20, Ymax: 10}
	if b != want {
		t.Errorf("Got %+v, want %+v\n", b, want)
	}
}
