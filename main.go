package main

import "releasesite/cmd"

func main() {
	cmd.Execute()
}
