// Command zenith is a personal dashboard for money, projects, contacts,
// journal entries and mood.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/zenith/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
