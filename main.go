package main

import "github.com/gaurav-prasanna/stylepipe/cmd"

func main() {
	cmd.Execute()
}
