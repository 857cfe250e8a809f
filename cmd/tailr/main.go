package main

import (
	"fmt"
	"os"

	"github.com/kazeburo/tailr"
	"github.com/pkg/errors"
)

func main() {
	if err := Execute(); err != nil {
		if errors.Cause(err) != tailr.ErrFilesSkipped {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
