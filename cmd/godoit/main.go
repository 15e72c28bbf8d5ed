package main

import "github.com/akyaiy/godoit/cmd"

func main() {
	cmd.Execute()
}
