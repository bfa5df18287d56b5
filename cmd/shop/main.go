package main

import "github.com/tair/nutribakery/internal/cli"

func main() {
	cli.Execute()
}
