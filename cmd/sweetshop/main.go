package main

import "github.com/Skotchmaster/sweet_shop/cmd/sweetshop/commands"

func main() {
	commands.Execute()
}
