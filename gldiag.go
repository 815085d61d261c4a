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

// gldiag
package main

import (
	"fmt"
)

// Diagnostics emitted by GL nodes code. Nothing here is fatal: the nodes are
// still built, but the renderer might show artifacts where reported

// Sectors on the two sides of a new miniseg pair disagree: the pair separates
// sectors that aren't known to be adjacent. Usually means unclosed sectors or
// overlapping lines in the level
type SectorMismatch struct {
	FrontMiniseg uint32
	BackMiniseg  uint32
	FrontSector  int32 // front sector of the neighbor closing the front loop
	BackSector   int32 // front sector of the neighbor closing the back loop
	X1, Y1       Fixed // start of the front miniseg
	X2, Y2       Fixed // end of the front miniseg
}

type GLDiagnostics interface {
	SectorMismatch(m SectorMismatch)
}

// NopDiagnostics discards everything
type NopDiagnostics struct{}

func (NopDiagnostics) SectorMismatch(m SectorMismatch) {}

// Collects diagnostics in memory. Used by tests and by the report writer
type DiagnosticsRecorder struct {
	Mismatches []SectorMismatch
}

func (r *DiagnosticsRecorder) SectorMismatch(m SectorMismatch) {
	r.Mismatches = append(r.Mismatches, m)
}

func (m SectorMismatch) String() string {
	return fmt.Sprintf("Sectors %d at (%d,%d) and %d at (%d,%d) don't match.\n",
		m.FrontSector, m.X1.Int(), m.Y1.Int(), m.BackSector, m.X2.Int(),
		m.Y2.Int())
}
