package main

import "github.com/revlog-project/revlog/internal/cli"

func main() {
	cli.Execute()
}
