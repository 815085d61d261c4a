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

// Central log (stdout/stderr) of the program
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sync"
)

type MyLogger struct {
	// Report of unclosed subsectors, collected from all levels. Only written
	// to if report was requested
	report bytes.Buffer
	// Mutex is used to order writes to stdin and stderr, as well as Sync call
	mu sync.Mutex
}

// Logs specific to one task (one level build, which is always worked on by a
// single goroutine). Their output is not forwarded to the stdout or stderr,
// but is instead buffered until merged into main log of MyLogger type, so that
// output of levels built concurrently doesn't get interleaved
type MiniLogger struct {
	buf    bytes.Buffer
	report bytes.Buffer
}

func CreateLogger() *MyLogger {
	return new(MyLogger)
}

var Log = CreateLogger()

var syslog = log.New(os.Stdout, "", 0)
var errlog = log.New(os.Stderr, "", 0)

// Your generic printf to let user see things
func (log *MyLogger) Printf(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	syslog.Printf(s, a...)
}

// As generic as printf, but writes to stderr instead of stdout
// Does NOT interrupt execution of the program
func (log *MyLogger) Error(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	errlog.Printf(s, a...)
}

// For advanced users or users that are curious, or programmers, there is
// stuff they might want to see but only when they can really bother to spend
// time reading it
func (log *MyLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	if verbosityLevel <= config.VerbosityLevel {
		log.mu.Lock()
		defer log.mu.Unlock()
		syslog.Printf(s, a...)
	}
}

// Panicking is not a good thing, but at least we can now use formatted printing
// for it
func (log *MyLogger) Panic(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	panic(fmt.Sprintf(s, a...))
}

// Report adds to the report of unclosed subsectors
func (log *MyLogger) Report(s string, a ...interface{}) {
	if config.ReportFileName == "" { // reference to global: config
		return
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	log.report.WriteString(fmt.Sprintf(s, a...))
}

func (log *MyLogger) GetReport() string {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.report.String()
}

// Sync is used to wait until all messages are written to the output
func (log *MyLogger) Sync() {
	log.mu.Lock()
	log.mu.Unlock()
}

func (log *MyLogger) Merge(mlog *MiniLogger, preface string) {
	if mlog == nil {
		return
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	if len(preface) > 0 {
		syslog.Print(preface)
	}
	content := mlog.buf.String()
	if len(content) > 0 {
		syslog.Print(content)
	}
	report := mlog.report.String()
	if len(report) > 0 {
		log.report.WriteString(report)
	}
}

func (mlog *MiniLogger) Printf(s string, a ...interface{}) {
	if mlog == nil {
		Log.Printf(s, a...)
		return
	}
	mlog.buf.WriteString(fmt.Sprintf(s, a...))
}

func (mlog *MiniLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	if mlog == nil {
		Log.Verbose(verbosityLevel, s, a...)
		return
	}
	if verbosityLevel <= config.VerbosityLevel {
		mlog.buf.WriteString(fmt.Sprintf(s, a...))
	}
}

func (mlog *MiniLogger) Report(s string, a ...interface{}) {
	if mlog == nil {
		Log.Report(s, a...)
		return
	}
	if config.ReportFileName == "" {
		return
	}
	mlog.report.WriteString(fmt.Sprintf(s, a...))
}

// SectorMismatch makes MiniLogger a diagnostics sink for the nodes builder.
// Mismatches are only shown when user asked for them
func (mlog *MiniLogger) SectorMismatch(m SectorMismatch) {
	if !config.WarnSectorMismatch {
		return
	}
	mlog.Printf("Warning: %s", m.String())
}

func (mlog *MiniLogger) String() string {
	if mlog == nil {
		return ""
	}
	return mlog.buf.String()
}

func CreateMiniLogger() *MiniLogger {
	return new(MiniLogger)
}
