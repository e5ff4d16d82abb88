package refs_test

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/aviator/driver"
	"github.com/takoeight0821/aviator/refs"
	"github.com/takoeight0821/aviator/utils"
)

func line(label string, names []string) string {
	if len(names) == 0 {
		return label + ":\n"
	}
	return label + ": " + strings.Join(names, ", ") + "\n"
}

func TestCollectFromTestData(t *testing.T) {
	t.Parallel()
	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)
	for _, testcase := range testcases {
		expected, ok := testcase.Expected["refs"]
		if !ok {
			continue
		}
		t.Run(testcase.Label, func(t *testing.T) {
			collector := refs.NewCollector()
			runner := driver.NewPassRunner()
			runner.AddPass(collector)

			_, err := runner.RunSource(testcase.Input)
			require.NoError(t, err)

			actual := line("variables", collector.Variables()) + line("functions", collector.Functions())
			if diff := cmp.Diff(expected, actual); diff != "" {
				t.Errorf("Collect %s mismatch (-want +got):\n%s", testcase.Label, diff)
			}
		})
	}
}

func TestDeduplicates(t *testing.T) {
	t.Parallel()
	collector := refs.NewCollector()
	runner := driver.NewPassRunner()
	runner.AddPass(collector)

	_, err := runner.RunSource("a == 1 || a == 2; f(a) && f(b)")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, collector.Variables())
	require.Equal(t, []string{"f"}, collector.Functions())
}

func TestKnownFunctions(t *testing.T) {
	t.Parallel()
	runner := driver.NewPassRunner()
	runner.AddPass(refs.NewCollector(refs.WithKnownFunctions("contains", "include")))

	_, err := runner.RunSource(`contains(tags, "a") && include(ids, 1)`)
	require.NoError(t, err)

	_, err = runner.RunSource(`contains(tags, "a") || missing(x)`)
	var target refs.UndefinedFunctionError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "missing", target.Name)
	require.EqualError(t, err, "run: missing is not a known function")
}

func TestInitResets(t *testing.T) {
	t.Parallel()
	collector := refs.NewCollector()
	runner := driver.NewPassRunner()
	runner.AddPass(collector)

	_, err := runner.RunSource("a")
	require.NoError(t, err)
	_, err = runner.RunSource("b")
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, collector.Variables())
}
