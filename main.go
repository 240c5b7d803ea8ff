package main

import (
	"flag"
	"fmt"
	"os"

	"agendad/internal/di"
	"agendad/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "c", "config.yaml", "path to the config file")
	flag.BoolVar(&flags.DebugMode, "d", false, "debug mode, mirrors logs to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
