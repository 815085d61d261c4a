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

// -- This file is where the program entry is.
// VigilantGL builds GL-friendly BSP trees: every subsector is closed with
// minisegs running along partition lines, the way ZDBSP by Marisa Heit does it.
// Levels are built concurrently, each in its own session
package main

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"golang.org/x/sync/errgroup"
)

// Outcome of building a single level
type LevelResult struct {
	Name   string
	mlog   *MiniLogger
	totals GLTotals
	err    error
}

func main() {
	timeStart := time.Now()

	// before config can be legitimately accessed, must call Configure()
	Configure()

	// Initialize wad file name from arguments
	if config.Profile {
		f, err := os.Create(config.ProfilePath)
		if err != nil {
			Log.Printf("Could not create CPU profile: %s", err.Error())
		} else {
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				Log.Printf("Could not start CPU profile: %s", err.Error())
			} else {
				defer pprof.StopCPUProfile()
			}
		}
	}

	config.InputFileName, _ = filepath.Abs(config.InputFileName)

	mainFileControl := FileControl{}
	defer mainFileControl.Shutdown()

	// Try open input wad
	f, err := mainFileControl.OpenInputFile(config.InputFileName)
	if err != nil {
		Log.Error("An error has occured while trying to read %s: %s\n",
			config.InputFileName, err)
		os.Exit(1)
	}

	wh, le, err := ReadWadDirectory(f)
	if err != nil {
		Log.Error("%s: %s\n", config.InputFileName, err)
		os.Exit(1)
	}
	if wh.MagicSig == IWAD_MAGIC_SIG {
		Log.Printf("The input file is an IWAD\n")
	} else {
		Log.Printf("The input file is a PWAD\n")
	}
	Log.Verbose(1, "The directory contains %d lumps and starts at %d byte offset\n",
		wh.LumpCount, wh.DirectoryStart)

	levels := FindLevels(le)
	if len(levels) == 0 {
		if config.MapName != "" {
			Log.Error("Level %s not found - terminating\n", config.MapName)
		} else {
			Log.Error("Unable to find any valid levels - terminating\n")
		}
		os.Exit(1)
	}

	if config.ReportFileName != "" {
		_, err := mainFileControl.OpenReportFile(config.ReportFileName)
		if err != nil {
			Log.Error("Couldn't create report file '%s': %s\n",
				config.ReportFileName, err)
			os.Exit(1)
		}
	}

	results := BuildAllLevels(f, le, levels)

	failed := 0
	var grand GLTotals
	for i := range results {
		res := &results[i]
		Log.Merge(res.mlog, "")
		if res.err != nil {
			Log.Error("%s\n", res.err)
			failed++
			continue
		}
		Log.Printf("%s: %s\n", res.Name, res.totals.String())
		grand.Add(res.totals)
	}
	if len(results) > 1 {
		Log.Printf("All levels: %s\n", grand.String())
	}

	if config.ReportFileName != "" {
		if err := mainFileControl.WriteReport(Log.GetReport()); err != nil {
			Log.Error("%s\n", err)
			failed++
		}
	}

	if !mainFileControl.Success() {
		Log.Printf("I/O error on closing files. The report might not have been saved!\n")
	}
	Log.Printf("Total time: %s\n", time.Since(timeStart))
	Log.Sync()
	if failed > 0 {
		os.Exit(1)
	}
}

// BuildAllLevels builds levels concurrently, up to config.Threads at a time.
// Results are in the same order as levels regardless of which level finishes
// first
func BuildAllLevels(f *os.File, le []LumpEntry, levels []LevelLumps) []LevelResult {
	threads := config.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	results := make([]LevelResult, len(levels))
	var g errgroup.Group
	g.SetLimit(threads)
	for i := range levels {
		i := i
		g.Go(func() error {
			results[i] = BuildLevel(f, le, &levels[i])
			return results[i].err
		})
	}
	// Errors are recorded per level. A failed level doesn't stop the others
	_ = g.Wait()
	return results
}

// BuildLevel loads level geometry and builds GL nodes for it. All output goes
// to the level's own MiniLogger
func BuildLevel(f *os.File, le []LumpEntry, lvl *LevelLumps) LevelResult {
	mlog := CreateMiniLogger()
	res := LevelResult{
		Name: lvl.Name,
		mlog: mlog,
	}
	levelStart := time.Now()
	mlog.Printf("Processing level %s:\n", lvl.Name)
	geom, err := LoadLevelGeometry(f, le, lvl)
	if err != nil {
		res.err = err
		return res
	}
	mlog.Verbose(1, "%s: %d vertices, %d linedefs, %d sidedefs, %d sectors\n",
		lvl.Name, len(geom.Vertices), len(geom.Linedefs), len(geom.Sidedefs),
		len(geom.Sectors))
	w := BuildGLNodes(geom, mlog, mlog)
	res.totals = w.Totals()
	for _, idx := range w.Unclosed() {
		mlog.Report("%s %s", lvl.Name, w.DescribeSubsector(idx))
	}
	if len(w.Unclosed()) > 0 {
		mlog.Printf("%s: %d subsectors are not closed\n", lvl.Name,
			len(w.Unclosed()))
	}
	mlog.Verbose(1, "%s built in %s\n", lvl.Name, time.Since(levelStart))
	return res
}
