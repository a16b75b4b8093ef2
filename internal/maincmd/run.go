package maincmd

import (
	"context"
	"os"

	"github.com/mna/mainer"
	"github.com/yaflang/yafl/internal/config"
	"github.com/yaflang/yafl/lang/compile"
)

// Run compiles and executes each file in turn, stopping at the first error.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	limits, err := config.Load()
	if err != nil {
		return printError(stdio, err)
	}
	cl := compile.Limits{CodeSize: limits.CodeSize, StackSize: limits.StackSize}

	for _, file := range args {
		src, err := os.ReadFile(file)
		if err != nil {
			return printError(stdio, err)
		}

		var trace = stdio.Stderr
		if !c.Trace {
			trace = nil
		}
		if err := compile.Run(ctx, file, src, cl, stdio.Stdin, stdio.Stdout, trace); err != nil {
			return printError(stdio, err)
		}
	}
	return nil
}
