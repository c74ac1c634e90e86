package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wallpaper-manager/internal/services"
)

func main() {
	os.Exit(run(newRootCommand()))
}

// run executes cmd and maps its error to a process exit status.
func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	switch {
	case err == nil, errors.Is(err, errConfigPrompted):
		return services.ExitOK
	case errors.Is(err, context.Canceled):
		return services.ExitFailure
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return services.ExitCode(err)
}
