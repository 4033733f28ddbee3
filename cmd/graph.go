package cmd

import (
	"github.com/Taichi-iskw/followban/cmd/graph"
)

func init() {
	// a nil service makes every command build its own from the configuration
	for _, command := range graph.NewCommands(nil) {
		rootCmd.AddCommand(command)
	}
	rootCmd.AddCommand(graph.NewStatusCommand(nil))
}
