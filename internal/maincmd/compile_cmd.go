package maincmd

import (
	"context"
	"os"

	"github.com/mna/mainer"
	"github.com/yaflang/yafl/internal/config"
	"github.com/yaflang/yafl/lang/codegen"
	"github.com/yaflang/yafl/lang/compile"
)

// Compile compiles each file and prints its instruction listing without
// executing it.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
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

		code, err := compile.Compile(file, src, cl)
		if err != nil {
			return printError(stdio, err)
		}
		if err := codegen.Disassemble(stdio.Stdout, code); err != nil {
			return printError(stdio, err)
		}
	}
	return nil
}
