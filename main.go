package main

import "github.com/mansalskog/BadLisp/cmd"

func main() {
	cmd.Execute()
}
