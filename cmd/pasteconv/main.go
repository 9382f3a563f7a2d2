package main

import "github.com/anyproto/anytype-paste/cli/cmd"

func main() {
	cmd.Execute()
}
