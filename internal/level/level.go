// Package level holds the fixed campaign table. Difficulty rises with every
// level: more data nodes, more drones and a faster drone tick.
package level

import (
	"fmt"
	"time"
)

// Config fully determines spawn counts and drone speed for one level.
type Config struct {
	Number         int
	Name           string
	Items          int           // data nodes to collect
	Drones         int           // drones spawned at level start
	DroneMoveDelay time.Duration // drone tick period
}

// Max is the highest level number.
const Max = 5

var table = [Max]Config{
	{Number: 1, Name: "Boot Sector", Items: 8, Drones: 6, DroneMoveDelay: 600 * time.Millisecond},
	{Number: 2, Name: "Packet Storm", Items: 10, Drones: 8, DroneMoveDelay: 500 * time.Millisecond},
	{Number: 3, Name: "Firewall", Items: 12, Drones: 10, DroneMoveDelay: 400 * time.Millisecond},
	{Number: 4, Name: "Deep Net", Items: 15, Drones: 12, DroneMoveDelay: 300 * time.Millisecond},
	{Number: 5, Name: "Core Breach", Items: 18, Drones: 14, DroneMoveDelay: 200 * time.Millisecond},
}

// Count returns the number of levels.
func Count() int {
	return len(table)
}

// Clamp restricts a level number to [1, Max].
func Clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > Max {
		return Max
	}
	return n
}

// Get returns the config for level n, clamped to the table.
func Get(n int) Config {
	return table[Clamp(n)-1]
}

// All returns a copy of the table in level order.
func All() []Config {
	out := make([]Config, len(table))
	copy(out, table[:])
	return out
}

// Names returns the names of all levels.
func Names() []string {
	names := make([]string, len(table))
	for i, c := range table {
		names[i] = c.Name
	}
	return names
}

// HasNext reports whether a level follows n.
func HasNext(n int) bool {
	return Clamp(n) < Max
}

// Validate checks that cfgs is numbered 1..len and strictly harder at each step.
func Validate(cfgs []Config) error {
	for i, c := range cfgs {
		if c.Number != i+1 {
			return fmt.Errorf("level: entry %d has number %d", i, c.Number)
		}
		if c.Items <= 0 || c.Drones < 0 || c.DroneMoveDelay <= 0 {
			return fmt.Errorf("level %d: non-positive parameters", c.Number)
		}
		if i == 0 {
			continue
		}
		prev := cfgs[i-1]
		if c.Items <= prev.Items {
			return fmt.Errorf("level %d: items %d not above %d", c.Number, c.Items, prev.Items)
		}
		if c.Drones <= prev.Drones {
			return fmt.Errorf("level %d: drones %d not above %d", c.Number, c.Drones, prev.Drones)
		}
		if c.DroneMoveDelay >= prev.DroneMoveDelay {
			return fmt.Errorf("level %d: drone delay %v not below %v", c.Number, c.DroneMoveDelay, prev.DroneMoveDelay)
		}
	}
	return nil
}
