package scanner_test

import (
	gotoken "go/token"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yaflang/yafl/lang/scanner"
	"github.com/yaflang/yafl/lang/token"
)

func scanAll(t *testing.T, src string) []scanner.TokenAndValue {
	t.Helper()

	var (
		s      scanner.Scanner
		tokVal token.Value
		got    []scanner.TokenAndValue
	)
	s.Init("test", []byte(src), func(_ gotoken.Position, msg string) {
		t.Fatalf("unexpected scan error: %s", msg)
	})
	for {
		tok := s.Scan(&tokVal)
		got = append(got, scanner.TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	return got
}

func toks(tvs []scanner.TokenAndValue) []token.Token {
	out := make([]token.Token, len(tvs))
	for i, tv := range tvs {
		out[i] = tv.Token
	}
	return out
}

func TestScanDeclarationAndAssign(t *testing.T) {
	got := scanAll(t, "var x; x := 1 + 2;")
	require.Equal(t, []token.Token{
		token.VAR, token.IDENT, token.SEMI,
		token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT, token.SEMI,
		token.EOF,
	}, toks(got))
}

func TestScanComparisonAndBitwise(t *testing.T) {
	got := scanAll(t, "x < y; x <= y; x <> y; x & y; x << 2; x >> 2;")
	want := []token.Token{
		token.IDENT, token.LT, token.IDENT, token.SEMI,
		token.IDENT, token.LE, token.IDENT, token.SEMI,
		token.IDENT, token.NEQ, token.IDENT, token.SEMI,
		token.IDENT, token.AMP, token.IDENT, token.SEMI,
		token.IDENT, token.SHL, token.INT, token.SEMI,
		token.IDENT, token.SHR, token.INT, token.SEMI,
		token.EOF,
	}
	require.Equal(t, want, toks(got))
}

func TestScanLineComment(t *testing.T) {
	got := scanAll(t, "x := 1; // trailing comment\ny := 2;")
	require.Equal(t, []token.Token{
		token.IDENT, token.ASSIGN, token.INT, token.SEMI,
		token.IDENT, token.ASSIGN, token.INT, token.SEMI,
		token.EOF,
	}, toks(got))
}

func TestScanIntValue(t *testing.T) {
	got := scanAll(t, "42")
	require.Len(t, got, 2)
	require.Equal(t, token.INT, got[0].Token)
	require.Equal(t, int64(42), got[0].Value.Int)
}

func TestScanKeywords(t *testing.T) {
	got := scanAll(t, "if then else while do end input output or and not")
	require.Equal(t, []token.Token{
		token.IF, token.THEN, token.ELSE, token.WHILE, token.DO, token.END,
		token.INPUT, token.OUTPUT, token.OR, token.AND, token.NOT, token.EOF,
	}, toks(got))
}
