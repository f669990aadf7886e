package main

import "github.com/aweris/gitlet/cmd/gitlet/cmd"

func main() {
	cmd.Execute()
}
