package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/LianHaeming/weightlog/cli"
)

// BuildVersion is set at compile time via -ldflags.
// If empty (local dev), falls back to a timestamp so assets are never cached.
var BuildVersion string

func main() {
	if err := cli.Execute(BuildVersion); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
