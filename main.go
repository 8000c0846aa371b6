package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnsskit/ggpstclock/cmd"
)

func main() {
	_, calledAs := filepath.Split(os.Args[0])
	args := os.Args[1:]
	res := 0
	switch calledAs {
	case "gpstconv":
		res = cmd.GPSTConvRun(args)
	case "gpstlocal":
		res = cmd.GPSTLocalRun(args)
	case "gnmeagpst":
		res = cmd.GNMEAGPSTRun(args)
	case "gpstclockd":
		res = cmd.GPSTClockDRun(args)
	case "gpstclockc":
		res = cmd.GPSTClockCRun(args)
	case "gntpgpst":
		res = cmd.GNTPGPSTRun(args)
	case "ggpstclock":
		res = cmd.MainDispatcher(args)
	default:
		fmt.Println("Called as ", calledAs, ". I don't recognize that name")
	}
	os.Exit(res)
}
