package main

import "go.btindex/internal/cli"

func main() {
	cli.Execute()
}
