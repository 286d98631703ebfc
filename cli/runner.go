package cli

import (
	"context"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
)

func Run(args []string) error {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	service, err := New(ctx, options, stdout, stderr)
	if err != nil {
		return err
	}
	defer service.Close()
	return service.Execute(ctx, parser.Active.Name)
}
