package main

import "github.com/arun477/dirtree/cmd"

func main() {
	cmd.Execute()
}
