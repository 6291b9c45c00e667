package main

import "dongne/internal/cli"

func main() {
	cli.Execute()
}
