package cmd

import (
	"fmt"
	"os"
)

// MainDispatcher is called if run as "ggpstclock <subcommand>"
func MainDispatcher(args []string) int {
	ret := 0
	if len(args) == 0 {
		_, _ = fmt.Println("Available applets: gpstconv,gpstlocal,gnmeagpst,gpstclockd,gpstclockc,gntpgpst")
		ret = 1
		return ret
	}

	switch args[0] {
	case "gpstconv":
		ret = GPSTConvRun(args[1:])
	case "gpstlocal":
		ret = GPSTLocalRun(args[1:])
	case "gnmeagpst":
		ret = GNMEAGPSTRun(args[1:])
	case "gpstclockd":
		ret = GPSTClockDRun(args[1:])
	case "gpstclockc":
		ret = GPSTClockCRun(args[1:])
	case "gntpgpst":
		ret = GNTPGPSTRun(args[1:])

	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		ret = 1
	}
	return ret
}
