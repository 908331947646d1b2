package main

import "github.com/junaidrashid-git/sunrise-cafe/cli"

func main() {
	cli.Execute()
}
