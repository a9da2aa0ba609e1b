package main

import (
	"sheets_rw/cmd"
	"sheets_rw/internal/app"
)

var version = "dev"

func main() {
	app.SetupEnvironment()

	cmd.SetVersion(version)
	cmd.Execute()
}
