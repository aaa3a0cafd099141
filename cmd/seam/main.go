package main

import "github.com/tailorly/seam/internal/cli"

func main() {
	cli.Execute()
}
