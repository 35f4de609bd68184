package main

import "github.com/damianphung/docsite/cmd"

func main() {
	cmd.Execute()
}
