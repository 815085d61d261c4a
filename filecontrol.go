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
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Controls lifetime of the input wad and the report file - ensures they are
// properly closed by the end of program, regardless of success and failure.
// The input wad is never written to
type FileControl struct {
	success        bool
	fin            *os.File
	freport        *os.File
	inputFileName  string
	reportFileName string
}

func (fc *FileControl) OpenInputFile(inputFileName string) (*os.File, error) {
	fc.inputFileName = inputFileName
	var err error
	fc.fin, err = os.Open(inputFileName)
	if err != nil {
		fc.fin = nil
	}
	return fc.fin, err
}

func (fc *FileControl) OpenReportFile(reportFileName string) (*os.File, error) {
	fc.reportFileName = reportFileName
	var err error
	fc.freport, err = os.OpenFile(fc.reportFileName, os.O_CREATE|os.O_RDWR|os.O_TRUNC,
		os.ModeExclusive|os.ModePerm)
	if err != nil {
		fc.freport = nil
		return nil, err
	}
	return fc.freport, nil
}

// WriteReport writes the report line by line, using platform-specific
// linebreaks
func (fc *FileControl) WriteReport(content string) error {
	if fc.freport == nil {
		return fmt.Errorf("report file is not open")
	}
	CRLF := runtime.GOOS == "windows"
	lines := strings.SplitAfter(content, "\n")
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		err := WriterPrintfln(fc.freport, CRLF, "%s", line)
		if err != nil {
			return fmt.Errorf("writing report file '%s': %w", fc.reportFileName, err)
		}
	}
	return nil
}

func (fc *FileControl) CloseReportFile(suc bool) bool {
	if fc.freport == nil {
		return true
	}
	if suc {
		fc.freport.Write([]byte("# Report written successfully - no entries lost\n"))
	} else {
		fc.freport.Write([]byte("# Program aborted, report might be missing entries\n"))
	}
	err := fc.freport.Close()
	if err != nil {
		Log.Error("Couldn't close report file '%s': %s\n", fc.reportFileName, err.Error())
	} else {
		if suc {
			Log.Printf("Written report file %s\n", fc.reportFileName)
		} else {
			Log.Printf("Written incomplete report file %s\n", fc.reportFileName)
		}
	}
	fc.freport = nil
	return err == nil
}

func (fc *FileControl) Success() bool {
	if fc.fin == nil {
		Log.Panic("Sanity check failed: descriptor invalid.\n")
	}
	errFin := fc.fin.Close()
	fc.fin = nil
	sucReport := fc.CloseReportFile(true)
	fc.success = true
	if errFin != nil {
		Log.Error("Closing input file returned error: %s.\n", errFin.Error())
		return false
	}
	return sucReport
}

// Ensures we close all files when program exits
func (fc *FileControl) Shutdown() {
	if fc.success {
		return
	}

	var errFin error
	if fc.fin != nil {
		errFin = fc.fin.Close()
	}

	if errFin != nil {
		Log.Error("Couldn't close input file '%s': %s\n", fc.inputFileName, errFin.Error())
	}

	fc.CloseReportFile(false)
}

// Print with platform-specific linebreaks indicated by CRLF argument
func WriterPrintfln(w io.Writer, CRLF bool, format string, a ...interface{}) error {
	if len(format) > 0 && format[len(format)-1] == '\n' {
		format = string([]byte(format)[:len(format)-1])
	}
	s := fmt.Sprintf(format, a...)
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	_, err := w.Write([]byte(appendCRLF(CRLF, s)))
	return err
}

func appendCRLF(CRLF bool, s string) string {
	if CRLF {
		return s + "\r\n"
	} else {
		return s + "\n"
	}
}
