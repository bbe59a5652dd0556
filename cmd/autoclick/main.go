package main

import (
	"os"

	"github.com/stigoleg/autoclick/internal/cli"
	"github.com/stigoleg/autoclick/internal/platform"
	"github.com/stigoleg/autoclick/internal/platform/direct"
)

const appVersion = "0.4.0"

func main() {
	os.Exit(cli.Execute(appVersion,
		cli.WithDirectBackend(func() platform.Pointer { return direct.New() }),
	))
}
