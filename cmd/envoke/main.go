package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/example/envoke/internal/cli"
	"github.com/example/envoke/internal/envoke"
	"github.com/example/envoke/internal/envoke/config"
	"github.com/example/envoke/internal/envoke/storage"
)

var exitFunc = os.Exit

func main() {
	fs := afero.NewOsFs()

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
		return
	}

	svc := envoke.NewService(cfg, storage.New(fs))
	root := cli.NewRootCommand(svc, cli.NewPromptUI(), os.Stdout, os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
