package main

import (
	"github.com/robotalks/dshot.go/pkg/cli/sh"
	"github.com/robotalks/dshot.go/pkg/env/client"

	_ "github.com/robotalks/dshot.go/pkg/cli/cmds/esc"
)

//go-build: CGO_ENABLED=0

func init() {
	client.SetupFlags()
}

func main() {
	sh.Main()
}
