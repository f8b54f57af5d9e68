package main

import "github.com/dbsmedya/shiftmerge/cmd/shiftmerge/cmd"

func main() {
	cmd.Execute()
}
