package main

import "maskeraser/cmd/maskeraser/commands"

func main() {
	commands.Execute()
}
