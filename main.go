package main

import "github.com/Zedyas/zen-data-explorer/cmd"

func main() {
	cmd.Execute()
}
