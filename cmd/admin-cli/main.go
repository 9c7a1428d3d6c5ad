package main

import "mathspring/cmd/admin-cli/command"

func main() {
	command.Execute()
}
