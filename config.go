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
	"os"
)

const VERSION = "0.1a"

/*
-t= Number of levels to build concurrently
	(defaults to number of cores available)

-w Warn about sector mismatch across minisegs (default: disabled)

-c Check that every subsector forms closed loops (default: enabled)

-m <MAP> Build only the specified level, e.g. MAP01 or E1M1

-r <file> Write description of every unclosed subsector to file

-v Add verbosity to text output. Use multiple times for increased verbosity.

*/

type ProgramConfig struct {
	InputFileName      string
	ReportFileName     string // unclosed subsectors are described here
	MapName            string // if not empty, only this level is built
	Threads            int    // 0 means "auto = the number of cores"
	WarnSectorMismatch bool
	CheckClosure       bool
	Profile            bool
	ProfilePath        string
	VerbosityLevel     int
}

var config = DefaultConfig() // global variable that will be accessed from other threads too

func DefaultConfig() *ProgramConfig {
	return &(ProgramConfig{
		InputFileName:      "",
		ReportFileName:     "",
		MapName:            "",
		Threads:            0,
		WarnSectorMismatch: false,
		CheckClosure:       true,
		Profile:            false,
		ProfilePath:        "",
		VerbosityLevel:     0,
	})
}

// Configure prints the banner and parses command line into the global config.
// Exits the program if command line is malformed, or if no input file was
// given (help is printed then)
func Configure() {
	Log.Printf("VigilantGL ver %s\n", VERSION)
	Log.Printf("Copyright (c)   2026 VigilantDoomer\n")
	Log.Printf("GL nodes closure is built upon ideas first implemented in ZDBSP\n")
	Log.Printf("by Marisa Heit, and is distributed under the terms of \n")
	Log.Printf(" GNU General Public License v2.\n")
	Log.Printf("\n")
	config = DefaultConfig()
	// Proceed to parse command line
	if !(config.FromCommandLine(os.Args[1:])) {
		Log.Printf("\n")
		os.Exit(1)
	}

	// If input file name was not passed, print help
	if config.InputFileName == "" {
		PrintHelp()
		os.Exit(0)
	}
}

func PrintHelp() {
	Log.Printf("Usage: vigilantgl {-options} filename.wad {-m MAP01} {-r report.txt}\n")
	Log.Printf("\n")
	Log.Printf("-x+ turn on option -x- turn off option")
	Log.Printf("\n")
	Log.Printf("-t= Number of levels to build concurrently\n")
	Log.Printf("	(defaults to number of cores available)\n")
	Log.Printf("\n")
	Log.Printf("-w Warn about sector mismatch across minisegs (default: disabled)\n")
	Log.Printf("\n")
	Log.Printf("-c Check that every subsector forms closed loops (default: enabled)\n")
	Log.Printf("\n")
	Log.Printf("-m <MAP> Build only the specified level, e.g. MAP01 or E1M1\n")
	Log.Printf("\n")
	Log.Printf("-r <file> Write description of every unclosed subsector to file\n")
	Log.Printf("\n")
	Log.Printf("-v Add verbosity to text output. Use multiple times for increased verbosity.\n")
	Log.Printf("\n")
	Log.Printf("--cpuprofile <file> Write CPU profile to file\n")
	Log.Printf("\n")
	Log.Printf("Example: vigilantgl -w -t=4 file.wad -r unclosed.txt\n")
	Log.Printf("	Builds GL nodes for every level in 'file.wad' using 4 threads,\n")
	Log.Printf("	reporting sectors that don't match across minisegs, and writes\n")
	Log.Printf("	subsectors that couldn't be closed to 'unclosed.txt'.\n")
	Log.Printf("	The wad file is not modified.\n")
	Log.Printf("\n")
}
