package calcexpr_test

import (
	"testing"

	"github.com/kephrin/calcexpr"
)

func FuzzEval(f *testing.F) {
	f.Add("2 ^ 3 ^ 2")
	f.Add("sqrt(16) + sin(pi)")
	f.Add("3.5 & 2")
	f.Add("1 / 0.000000000000000000001")
	f.Fuzz(func(t *testing.T, s string) {
		calcexpr.EvalString(s)
	})
}
