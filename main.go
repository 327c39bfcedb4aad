package main

import "item-catalog/cmd"

func main() {
	cmd.Execute()
}
