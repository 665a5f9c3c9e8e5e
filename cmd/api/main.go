package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "dev-genie",
		Short:        "Dev Genie API",
		SilenceUsage: true,
	}
	serve := serveCMD()
	root.RunE = serve.RunE
	root.AddCommand(serve, migrateCMD())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
