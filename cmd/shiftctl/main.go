package main

import (
	"fmt"
	"os"

	"github.com/Mohammed-ye12/Attendance-APP/cmd/shiftctl/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}
