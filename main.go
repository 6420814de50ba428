package main

import "dubflow/cmd"

func main() {
	cmd.Execute()
}
