package main

import "heic2jpg/cmd"

func main() {
	cmd.Execute()
}
