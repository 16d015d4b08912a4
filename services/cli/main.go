package main

import "github.com/cimillas/gym-slots/services/cli/cmd"

func main() {
	cmd.Execute()
}
