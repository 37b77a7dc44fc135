package main

import "github.com/brogergvhs/dubfilter/cmd"

func main() {
	cmd.Execute()
}
