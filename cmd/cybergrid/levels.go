package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cybergrid/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level table",
	Long:  `Shows every level with its data node count, drone count and drone speed.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels := level.All()

	maxNameLen := 4 // "Name" header
	for _, l := range levels {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	fmt.Printf("  %-2s  %-*s  %5s  %6s  %s\n", "#", maxNameLen, "Name", "Nodes", "Drones", "Drone tick")
	fmt.Printf("  %-2s  %-*s  %5s  %6s  %s\n", "-", maxNameLen, "----", "-----", "------", "----------")

	for _, l := range levels {
		fmt.Printf("  %-2d  %-*s  %5d  %6d  %v\n", l.Number, maxNameLen, l.Name, l.Items, l.Drones, l.DroneMoveDelay)
	}

	fmt.Println()
	fmt.Println("Run 'cybergrid play --level <n>' to preselect a level.")
}
