package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
  saferide - proximity alert and broadcast backend

  Configuration comes from environment variables, a YAML file, or
  struct defaults, in that order of precedence.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}
