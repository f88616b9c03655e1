package main

import "github.com/qrave1/meetspace/cmd"

func main() {
	cmd.Execute()
}
