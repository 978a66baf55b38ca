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

// Package bus defines the capability views that the C64 memory map exposes
// to its different observers. The CPU, the CIA keyboard bridge and the
// VIC-II all see the same underlying bytes through different rules, so each
// gets its own narrow interface rather than one interface with every method
// any caller might need.
//
// The DebugBus is for the exclusive use of the monitor and exposes a Peek()
// and Poke() function that read and write through the same processor-port
// overlay as the CPU view.
package bus
