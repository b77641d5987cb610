package main

import "github.com/swellbound/surfcast/internal/cli"

func main() {
	cli.Execute()
}
