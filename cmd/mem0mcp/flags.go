package main

import (
	"flag"
)

type AppFlags struct {
	ConfigFile string
	Host       string
	Port       int
}

func ParseFlags() AppFlags {
	configFile := flag.String("config", "", "Path to the YAML configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	hostFlag := flag.String("host", "", "Host to bind the SSE server to (overrides config file if set)")
	portFlag := flag.Int("port", 0, "Port to listen on (overrides config file if set)")

	flag.Parse()

	flags := AppFlags{
		Host: *hostFlag,
		Port: *portFlag,
	}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	return flags
}
