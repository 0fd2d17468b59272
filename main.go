package main

import "github.com/nicolasbonaa/controle-compras/cmd"

func main() {
	cmd.Execute()
}
