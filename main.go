package main

import "github.com/theirongolddev/finnova/cmd"

func main() {
	cmd.Execute()
}
