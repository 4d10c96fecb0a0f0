package main

import "github.com/marente/fathom/cmd"

func main() {
	cmd.Execute()
}
