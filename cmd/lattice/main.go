package main

import "github.com/MeKo-Tech/lattice/cmd/lattice/cmd"

func main() {
	cmd.Execute()
}
