package main

import "github.com/criatividade-digital/revisa/internal/cli"

func main() {
	cli.Execute()
}
