package main

import "github.com/pfrederiksen/voter-density/internal/cli"

func main() {
	cli.Execute()
}
