package main

import "github.com/deepanshu-yd/avalanche-dev-assistant/internal/cli"

func main() {
	cli.Execute()
}
