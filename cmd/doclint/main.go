package main

import "github.com/dgallion1/doclint/internal/cli"

func main() {
	cli.Execute()
}
