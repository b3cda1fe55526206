package main

import "github.com/tanq16/ytmp3/cmd"

func main() {
	cmd.Execute()
}
