package main

import "OlympicsHub/internal/cli"

func main() {
	cli.Execute()
}
