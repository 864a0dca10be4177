package main

import "github.com/OpenTraceLab/OpenTraceLayout/cmd/otl/cmd"

func main() {
	cmd.Execute()
}
