package main

import "github.com/questpilot/hackquest-bot/cmd"

func main() {
	cmd.Execute()
}
