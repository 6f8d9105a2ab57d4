// Package main is the entry point of tvremote.
package main

import (
	"github.com/samber/lo"
	"github.com/tvremote/tvremote/cmd"
	"github.com/tvremote/tvremote/config"
	"github.com/tvremote/tvremote/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
