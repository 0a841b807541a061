package main

import "github.com/brianpage/portfolio-server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
