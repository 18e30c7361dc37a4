package main

import "candle-remote/cli"

func main() {
	cli.Execute()
}
