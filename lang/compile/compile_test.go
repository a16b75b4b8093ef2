package compile_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yaflang/yafl/lang/compile"
	"github.com/yaflang/yafl/lang/vm"
)

func run(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := compile.Run(context.Background(), "test", []byte(src), compile.Limits{}, strings.NewReader(stdin), &out, nil)
	return out.String(), err
}

func TestHelloArithmetic(t *testing.T) {
	out, err := run(t, "var x; x := 2 + 3 * 4; output x;", "")
	require.NoError(t, err)
	require.Equal(t, "Output: 14\n", out)
}

func TestEcho(t *testing.T) {
	out, err := run(t, "var n; input n; output n;", "42")
	require.NoError(t, err)
	require.Equal(t, "Input: Output: 42\n", out)
}

func TestConditionalTrue(t *testing.T) {
	out, err := run(t, "var x; x := 5; if x > 3 then output 1; else output 0;", "")
	require.NoError(t, err)
	require.Equal(t, "Output: 1\n", out)
}

func TestConditionalFalse(t *testing.T) {
	out, err := run(t, "var x; x := 1; if x > 3 then output 1; else output 0;", "")
	require.NoError(t, err)
	require.Equal(t, "Output: 0\n", out)
}

func TestLoopSum(t *testing.T) {
	out, err := run(t, "var i; var s; i := 1; s := 0; while i <= 10 do s := s + i; i := i + 1; end; output s;", "")
	require.NoError(t, err)
	require.Equal(t, "Output: 55\n", out)
}

func TestZeroDivision(t *testing.T) {
	out, err := run(t, "var x; x := 1 / 0; output x;", "")
	require.ErrorIs(t, err, vm.ErrZeroDivision)
	require.NotContains(t, out, "Output:")
}

func TestUndefinedIdentifier(t *testing.T) {
	_, err := run(t, "var x; output y;", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "identifier not defined")
}

func TestBitwise(t *testing.T) {
	out, err := run(t, "var x; x := 6 & 3; output x; x := 6 | 1; output x; x := 1 << 4; output x;", "")
	require.NoError(t, err)
	require.Equal(t, "Output: 2\nOutput: 7\nOutput: 16\n", out)
}
