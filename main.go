package main

import "skillswap-cli/cmd"

func main() {
	cmd.Execute()
}
