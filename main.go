package main

import "github.com/the20100/meta-ads-cli/cmd"

func main() {
	cmd.Execute()
}
