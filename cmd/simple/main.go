package main

import (
	"context"
	"os"

	"github.com/HMasataka/serve/internal/app"
	"github.com/HMasataka/serve/internal/config"
)

func main() {
	os.Exit(app.Run(context.Background(), "simple", config.Default(), os.Args[1:], os.Stdout, os.Stderr))
}
