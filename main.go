package main

import "github.com/programble/lispy/cmd"

func main() {
	cmd.Execute()
}
