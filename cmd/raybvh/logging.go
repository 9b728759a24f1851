package main

import (
	"github.com/kjhurst/raybvh/log"
	"github.com/urfave/cli"
)

var logger = log.New("raybvh")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
