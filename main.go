package main

import "github.com/afrantzis/ugcs/cmd"

func main() {
	cmd.Execute()
}
