package main

import "github.com/ygelfand/kogrid/cmd"

func main() {
	cmd.Execute()
}
