package main

import "github.com/kondzio13/alis/cmd"

func main() {
	cmd.Execute()
}
