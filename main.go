package main

import "termsheet-reconciler/cmd"

func main() {
	cmd.Execute()
}
