package main

import "github.com/dadmoscow/xrandrctl/cmd/xrandrctl/commands"

// Overridden at release time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	commands.SetVersion(version)
	commands.Execute()
}
