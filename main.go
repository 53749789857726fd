package main

import "cellular/cmd"

func main() {
	cmd.Execute()
}
