package main

import (
	"context"
	"os"

	"github.com/HMasataka/serve/internal/app"
	"github.com/HMasataka/serve/internal/config"
)

const defaultDocument = "test-claude-ui.html"

func main() {
	base := config.Default()
	base.Server.DefaultDocument = defaultDocument
	base.Banner.Style = config.BannerBox

	// Serve the directory the binary lives in unless told otherwise.
	if dir, err := config.ExecutableDir(); err == nil {
		base.Server.Root = dir
	}

	os.Exit(app.Run(context.Background(), "server", base, os.Args[1:], os.Stdout, os.Stderr))
}
