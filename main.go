package main

import (
	"os"

	"github.com/growfastwithus/growfast/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
