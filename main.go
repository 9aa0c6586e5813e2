package main

import "github.com/gaurav-prasanna/richtree/cmd"

func main() {
	cmd.Execute()
}
