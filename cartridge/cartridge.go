// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package cartridge loads the host's ROM images and PRG program files into
// the memory bus. The C64's three ROM images sit at fixed addresses, so
// there's no mapper to fingerprint - just three files and three addresses.
package cartridge

import (
	"fmt"
	"os"

	"github.com/nilclass/c64emu/hardware/memory/memorymap"
	"github.com/nilclass/c64emu/logger"
)

// ROMLoader is the subset of the memory bus that cartridge loading writes
// through.
type ROMLoader interface {
	LoadROM(addr uint16, buf []byte)
}

// ROMPaths names the three host files backing the fixed C64 ROM images.
type ROMPaths struct {
	Basic  string
	Char   string
	Kernal string
}

// LoadROMs reads each of the three named files and installs it at its fixed
// overlay address. A missing or unreadable file is reported but does not
// prevent the other two from loading - a missing KERNAL simply leaves those
// ROM bytes zero, per the host I/O failure error kind.
func LoadROMs(mem ROMLoader, paths ROMPaths) []error {
	var errs []error
	for _, img := range []struct {
		name string
		path string
		addr uint16
	}{
		{"BASIC", paths.Basic, memorymap.BasicROMBase},
		{"CHAR", paths.Char, memorymap.CharROMBase},
		{"KERNAL", paths.Kernal, memorymap.KernalROMBase},
	} {
		if img.path == "" {
			continue
		}
		buf, err := os.ReadFile(img.path)
		if err != nil {
			logger.Logf("cartridge", "loading %s ROM: %v", img.name, err)
			errs = append(errs, fmt.Errorf("cartridge: %s ROM: %w", img.name, err))
			continue
		}
		mem.LoadROM(img.addr, buf)
	}
	return errs
}
