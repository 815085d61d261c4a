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
	"strconv"
	"strings"
)

const ( // NumericOrState.whichType values
	ARG_ENABLED = iota
	ARG_DISABLED
	ARG_IS_NUMBER
)

type NumericOrState struct {
	whichType int // see consts above
	value     int
}

// Inspired by from zokumbsp's parser
func (c *ProgramConfig) FromCommandLine(args []string) bool {
	files := make([]string, 0)
	// Modifiers are options that take the following argument as a value.
	// pending points to the config field that the next argument goes into
	var pending *string
	pendingName := ""
	mapUsed := false
	reportUsed := false
	for _, arg := range args {
		if pending != nil {
			if arg == "" {
				break
			}
			*pending = arg
			pending = nil
			continue
		}
		if len(arg) < 1 {
			break
		}

		if arg[0] != '-' {
			files = append(files, arg)
			if len(files) > 1 {
				Log.Error("This program doesn't support specifying more than one input file - aborting.\n")
				return false
			}
			c.InputFileName = files[0]
			continue
		}

		if len(arg) < 2 {
			continue
		}
		switch arg[1] {
		case 't':
			{
				nos, rest := readNumeric("t", []byte(arg)[2:])
				switch nos.whichType {
				case ARG_IS_NUMBER:
					c.Threads = nos.value
				case ARG_DISABLED:
					c.Threads = 1
				default:
					c.Threads = 0
				}
				if len(rest) > 0 {
					Log.Error("Syntax error: -t parameter is followed by garbage; expected -t, -t- or -t=<number>. Garbage ignored.\n")
				}
			}
		case 'w':
			{
				enabled, rest := isEnabled([]byte(arg)[2:])
				c.WarnSectorMismatch = enabled
				if len(rest) > 0 {
					Log.Error("Syntax error: -w parameter is followed by garbage; expected -w, -w+ or -w-, no other variants allowed.\n")
				}
			}
		case 'c':
			{
				enabled, rest := isEnabled([]byte(arg)[2:])
				c.CheckClosure = enabled
				if len(rest) > 0 {
					Log.Error("Syntax error: -c parameter is followed by garbage; expected -c, -c+ or -c-, no other variants allowed.\n")
				}
			}
		case 'v':
			{
				// "count" type: -v, -vv, -vvv, etc.
				vs := 0
				barg := []byte(arg)[1:]
				for i := 0; i < len(barg); i++ {
					if barg[i] == 'v' {
						vs++
					} else {
						break
					}
				}
				c.VerbosityLevel += vs
			}
		case 'm':
			{
				if len(arg) != 2 {
					Log.Error("Unrecognized modifier '%s' (expected '-m <MAP>', space between '-m' and level name) - aborting.\n",
						arg)
					return false
				}
				if mapUsed {
					Log.Error("Can't specify level twice, only one level name is supported - aborting.\n")
					return false
				}
				mapUsed = true
				pending = &c.MapName
				pendingName = arg
			}
		case 'r':
			{
				if len(arg) != 2 {
					Log.Error("Unrecognized modifier '%s' (expected '-r <file>', space between '-r' and file name) - aborting.\n",
						arg)
					return false
				}
				if reportUsed {
					Log.Error("Can't specify report file twice - aborting.\n")
					return false
				}
				reportUsed = true
				pending = &c.ReportFileName
				pendingName = arg
			}
		case '-':
			{
				// parameter starts with double hyphen, e.g. --something
				if arg == "--cpuprofile" {
					// Parameter: write cpu profile to file following this
					// parameter
					c.Profile = true
					pending = &c.ProfilePath
					pendingName = arg
				} else {
					Log.Error("Unrecognised argument '%s' - aborting.\n", arg)
					return false
				}
			}
		default:
			{
				Log.Error("Unrecognised argument '%s' - aborting.\n", arg)
				return false
			}
		}
	}
	if pending != nil {
		Log.Error("Modifier '%s' was present without a value following it - aborting.\n",
			pendingName)
		return false
	}
	c.MapName = strings.ToUpper(c.MapName)
	return true
}

func isEnabled(arg []byte) (bool, []byte) {
	if len(arg) == 0 {
		return true, arg
	}
	if arg[0] == '+' {
		return true, arg[1:]
	} else if arg[0] == '-' {
		return false, arg[1:]
	} else {
		return true, arg
	}
}

// a+, a-, or a=<numeric_value_without_sign>
func readNumeric(prefix string, arg []byte) (NumericOrState, []byte) {
	if len(arg) == 0 {
		return NumericOrState{whichType: ARG_ENABLED}, arg
	}
	if arg[0] == '+' {
		return NumericOrState{whichType: ARG_ENABLED}, arg[1:]
	} else if arg[0] == '-' {
		return NumericOrState{whichType: ARG_DISABLED}, arg[1:]
	} else if arg[0] == '=' {
		// !!! doesn't support negative values, and values with explicit "+"
		// sign either
		t, v, rest := readNumericOnly(arg[1:])
		if t {
			return NumericOrState{
				whichType: ARG_IS_NUMBER,
				value:     v,
			}, rest
		} else {
			Log.Error("Couldn't properly parse '%s=%s'. Some parameters are going to be ignored as the result.\n", prefix, string(arg))
			return NumericOrState{
				whichType: ARG_ENABLED,
			}, arg[:0] // ignore the rest of parameters
		}
	} else {
		return NumericOrState{whichType: ARG_ENABLED}, arg
	}
}

func readNumericOnly(arg []byte) (bool, int, []byte) {
	if len(arg) == 0 {
		return false, 0, arg
	}
	l := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if '0' <= c && c <= '9' {
			l++
		} else {
			break
		}
	}
	if l > 0 {
		v, err := strconv.Atoi(string(arg[:l]))
		if err != nil {
			Log.Error("value '%s' was too big to interpret as int.\n",
				string(arg[:l]))
			return false, 0, arg[l:]
		}
		return true, v, arg[l:]
	}
	return false, 0, arg
}
