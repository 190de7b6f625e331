package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"vidscribe/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return services.ExitOK
	}

	fmt.Fprintf(stderr, "transcribe: %s\n", strings.TrimSpace(err.Error()))
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprint(stderr, cmd.UsageString())
		return services.ExitFailure
	}
	return services.ExitCode(err)
}

// usageError marks invocation mistakes that should print usage text.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }
