package main

import "github.com/branchdiff/branchdiff/cmd"

var version = "develop"

func main() {
	cmd.Execute(version)
}
