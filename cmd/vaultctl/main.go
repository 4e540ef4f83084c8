package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/reviewvault/internal/client/cli"
)

func main() {

	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "vaultctl:", err)
		os.Exit(1)
	}

}
