package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/pthm/bandlint/internal/cmd"
	"github.com/pthm/bandlint/internal/config"
)

func main() {
	// .env values never override the real environment
	config.LoadDotEnv()

	if err := fang.Execute(context.Background(), cmd.RootCmd); err != nil {
		os.Exit(1)
	}
}
