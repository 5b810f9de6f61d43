// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgrams-coder/aicmmlr/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	code := cli.Execute(ctx, cli.Streams{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}, os.Args[1:])

	stop()
	os.Exit(code)
}
