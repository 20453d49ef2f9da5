package selftest

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/launchdarkly/unit-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	framework.RegisterFunc("Passing tests", passingTests)
}

func passingTests(t *framework.T) {
	t.Debug("checking basic assertions")
	t.True(1+1 == 2)
	t.False(strings.HasPrefix("harness", "x"))
	t.Equal(1+1, 2)
	t.Equal([]string{"a", "b"}, strings.Split("a,b", ","))
	t.StringsEqual("foo", strings.ToLower("FOO"))

	framework.Compare(t, len("abc"), framework.Less, 4)
	framework.Compare(t, "b", framework.GreaterOrEqual, "a")
	framework.Compare(t, 2.5, framework.NotEqualTo, 2.0)

	t.Debug("checking floating point assertions")
	t.AlmostEqual(1, 1.3, 0.4)
	t.FloatsEqual(0.1+0.2, 0.3)
	t.Float32sEqual(1.0/3, 0.33333334)

	t.Debug("checking panics and errors")
	v := []int{0, 1}
	index := len(v)
	framework.Panics[runtime.Error](t, func() { _ = v[index] })
	framework.Panics[*strconv.NumError](t, func() {
		if _, err := strconv.Atoi("x"); err != nil {
			panic(err)
		}
	})
	_, err := os.Open("/nonexistent/selftest")
	framework.ErrorAs[*fs.PathError](t, err)
	t.True(errors.Is(err, fs.ErrNotExist))

	t.Check(assert.Contains(t, []int{1, 2, 3}, 2))
	require.Len(t, v, 2)
}
