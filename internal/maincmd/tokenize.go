package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/yaflang/yafl/lang/scanner"
	"github.com/yaflang/yafl/lang/token"
)

// Tokenize runs the scanner phase over each file and prints its tokens.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	toksByFile, err := scanner.ScanFiles(ctx, files...)
	for i, toks := range toksByFile {
		for _, tv := range toks {
			line, col := tv.Value.Pos.LineCol()
			fmt.Fprintf(stdio.Stdout, "%s:%d:%d: %s", files[i], line, col, tv.Token)
			if tv.Token == token.IDENT || tv.Token == token.INT {
				fmt.Fprintf(stdio.Stdout, " %s", tv.Value.Raw)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
