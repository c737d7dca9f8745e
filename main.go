package main

import "github.com/cfoq-dev/cfoq/cmd"

func main() {
	cmd.Execute()
}
