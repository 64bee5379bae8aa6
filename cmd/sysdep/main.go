package main

import "sysdep/internal/cli"

func main() {
	cli.Execute()
}
