package main

import "github.com/cardapiolabs/cardapio/cmd"

func main() {
	cmd.Execute()
}
