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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nilclass/c64emu/cartridge"
	"github.com/nilclass/c64emu/display/sdlsurface"
	"github.com/nilclass/c64emu/hardware/memory"
	"github.com/nilclass/c64emu/input/sdlkeyboard"
	"github.com/nilclass/c64emu/machine"
	"github.com/nilclass/c64emu/monitor"
)

var (
	basicROM  string
	charROM   string
	kernalROM string
	prgPath   string
	scale     int
	startBrk  bool
)

var rootCmd = &cobra.Command{
	Use:   "c64emu",
	Short: "c64emu is a Commodore 64 emulator core",
	Long:  "c64emu emulates the C64's 6502 CPU, banked memory bus and VIC-II video controller.",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&basicROM, "basic", "roms/basic", "path to the BASIC ROM image")
	rootCmd.Flags().StringVar(&charROM, "char", "roms/chargen", "path to the character ROM image")
	rootCmd.Flags().StringVar(&kernalROM, "kernal", "roms/kernal", "path to the KERNAL ROM image")
	rootCmd.Flags().StringVar(&prgPath, "prg", "", "PRG file to auto-load at startup")
	rootCmd.Flags().IntVar(&scale, "scale", 2, "integer pixel scale factor for the display window")
	rootCmd.Flags().BoolVar(&startBrk, "debug", false, "start in the debug monitor instead of free-running")
}

// Execute runs c64emu according to the command-line flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	mem := memory.NewBus()

	for _, loadErr := range cartridge.LoadROMs(mem, cartridge.ROMPaths{
		Basic:  basicROM,
		Char:   charROM,
		Kernal: kernalROM,
	}) {
		fmt.Fprintln(os.Stderr, loadErr)
	}

	surface, err := sdlsurface.New("c64emu", scale)
	if err != nil {
		return err
	}
	defer surface.Close()

	m := machine.NewMachine(mem, surface)
	if err := m.CPU.Reset(mem); err != nil {
		return err
	}
	if err := m.VIC.Init(mem); err != nil {
		return err
	}

	if prgPath != "" {
		data, err := os.ReadFile(prgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else if err := cartridge.LoadPRG(mem, data); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	mon := monitor.New(m, mem, sdlkeyboard.Pressed, os.Stdin, os.Stdout)
	os.Exit(mon.Run(startBrk))
	return nil
}
