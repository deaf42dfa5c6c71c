package main

import "content-relations/cmd"

func main() {
	cmd.Execute()
}
