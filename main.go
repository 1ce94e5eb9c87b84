package main

import "github.com/kadirgn/tempo/cmd"

func main() {
	cmd.Execute()
}
