package main

import "github.com/subhajit/appointment-booking/internal/cli"

func main() {
	cli.Execute()
}
