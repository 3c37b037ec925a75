package main

import (
	"os"

	"github.com/neo-th/iot-cache/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
