package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/example/ankistats/internal/app"
)

func main() {
	os.Exit(app.Main(context.Background(), filepath.Base(os.Args[0]), os.Args[1:], app.UserHome(), os.Stdout, os.Stderr))
}
