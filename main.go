package main

import "github.com/dorkx-sec/dorkx-cli/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
