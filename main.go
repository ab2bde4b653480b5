package main

import (
	"github.com/ycyaw66/library-backoffice/internal/config"
	"github.com/ycyaw66/library-backoffice/internal/entrypoint"
)

// Version information - set at build time via ldflags
var Version = "dev"

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
