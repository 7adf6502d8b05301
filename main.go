package main

import "github.com/adminboard/cmd"

func main() {
	cmd.Execute()
}
