package main

import "github.com/archfit/archfit/cmd"

func main() {
	cmd.Execute()
}
