package main

import (
	cmd "github.com/kerbaras/tracker/cmd/tracker"
)

func main() {
	cmd.Execute()
}
