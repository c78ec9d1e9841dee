package loader

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alihassanzadehk/ssnd-benchmark/internal/ssnd"
)

// memSource is an in-memory archive.Source for tests.
type memSource struct {
	entries map[string]string
}

func (m *memSource) Entries(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memSource) ReadEntry(ctx context.Context, name string) ([]byte, error) {
	content, ok := m.entries[name]
	if !ok {
		return nil, fmt.Errorf("no entry %s", name)
	}
	return []byte(content), nil
}

func (m *memSource) Close() error { return nil }

// validInstanceText returns a minimal well-formed instance file.
func validInstanceText() string {
	return "NodeSize 3\n" +
		"TimePeriods [0, 1]\n" +
		"RequestSize 1\n" +
		"ServiceNoPerArc 1\n" +
		"ServiceCapacity 20\n" +
		"FastServiceRatio 0.5\n" +
		"RevenueRange (1,2),(3,4)\n" +
		"ReqDemandRange (1,10)\n" +
		"ServiceCost 10\n" +
		"Trans/HoldingCost (2,1)\n" +
		"Arcs [(1,2)]\n" +
		"\n" +
		"serviceID\tServices\torigin\talpha\tdestination\tbeta\tTranCost\tfs\n" +
		"1\t((1,0),(2,1))\t1\t0\t2\t1\t2.0\t5.0\n" +
		"\n" +
		"reqs\torigins\tdestinations\talphas\tbetas\tcontract_based\trhos\tws\n" +
		"1\t1\t2\t0\t1\ttrue\t3.5\t10\n"
}

func TestLoadInstances_FiltersByPattern(t *testing.T) {
	src := &memSource{entries: map[string]string{
		"SSND Instances/ins_N10_K5_Freq2_sCap20.txt": validInstanceText(),
		"SSND Instances/readme.txt":                  "nothing to see here",
	}}

	out, err := New(Config{}).LoadInstances(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, out, 1)
	inst, ok := out[ssnd.InstanceKey{N: 10, K: 5, F: 2, C: 20}]
	require.True(t, ok)
	assert.Equal(t, "ins_N10_K5_Freq2_sCap20", inst.Name)
}

func TestLoadScenarios_KeyIncludesNu(t *testing.T) {
	src := &memSource{entries: map[string]string{
		"wScenarios_N10_K5_Freq2_sCap20_nu0.5.txt": "reqs\tws\trnd_ws\n1\t10\t8;12\n",
		"ins_N10_K5_Freq2_sCap20.txt":              validInstanceText(),
	}}

	out, err := New(Config{}).LoadScenarios(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, out, 1)
	set, ok := out[ssnd.ScenarioKey{N: 10, K: 5, F: 2, C: 20, Nu: 0.5}]
	require.True(t, ok)
	assert.Equal(t, []int{8, 12}, set.Draws[1])
}

func TestLoadInstances_InvalidUTF8IsReplaced(t *testing.T) {
	// A stray comment field with raw latin-1 bytes must not fail the load;
	// the bad bytes are replaced and the value passes through verbatim.
	text := "Note b\xff\xfead\n" + validInstanceText()
	src := &memSource{entries: map[string]string{
		"ins_N10_K5_Freq2_sCap20.txt": text,
	}}

	out, err := New(Config{}).LoadInstances(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, out, 1)
	inst := out[ssnd.InstanceKey{N: 10, K: 5, F: 2, C: 20}]
	assert.Equal(t, "b�ad", inst.Extra["Note"])
}

func TestLoadInstances_AbortsOnMalformedEntry(t *testing.T) {
	src := &memSource{entries: map[string]string{
		"ins_N10_K5_Freq2_sCap20.txt": validInstanceText(),
		"ins_N11_K5_Freq2_sCap20.txt": "NodeSize 3\n", // missing everything else
	}}

	out, err := New(Config{}).LoadInstances(context.Background(), src)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "ins_N11_K5_Freq2_sCap20.txt")

	var missing *ssnd.MissingFieldError
	assert.ErrorAs(t, err, &missing)
}

func TestLoadInstances_ParallelWorkers(t *testing.T) {
	entries := make(map[string]string)
	for n := 1; n <= 8; n++ {
		entries[fmt.Sprintf("ins_N%d_K5_Freq2_sCap20.txt", n)] = validInstanceText()
	}
	src := &memSource{entries: entries}

	out, err := New(Config{Workers: 4}).LoadInstances(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, out, 8)
	for n := 1; n <= 8; n++ {
		assert.Contains(t, out, ssnd.InstanceKey{N: n, K: 5, F: 2, C: 20})
	}
}

func TestLoadInstances_ParallelFailureAbortsAll(t *testing.T) {
	entries := make(map[string]string)
	for n := 1; n <= 8; n++ {
		entries[fmt.Sprintf("ins_N%d_K5_Freq2_sCap20.txt", n)] = validInstanceText()
	}
	entries["ins_N9_K5_Freq2_sCap20.txt"] = "garbage"
	src := &memSource{entries: entries}

	out, err := New(Config{Workers: 4}).LoadInstances(context.Background(), src)
	require.Error(t, err)
	assert.Nil(t, out)
}

func TestCompilePatterns(t *testing.T) {
	t.Run("defaults on empty strings", func(t *testing.T) {
		p, err := CompilePatterns("", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultInstancePattern, p.Instance.String())
		assert.Equal(t, DefaultScenarioPattern, p.Scenario.String())
	})

	t.Run("custom instance pattern", func(t *testing.T) {
		p, err := CompilePatterns(`case_(\d+)_(\d+)_(\d+)_(\d+)\.dat$`, "")
		require.NoError(t, err)

		key, ok, err := p.matchInstance("deep/dir/case_1_2_3_4.dat")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ssnd.InstanceKey{N: 1, K: 2, F: 3, C: 4}, key)
	})

	t.Run("error - invalid regex", func(t *testing.T) {
		_, err := CompilePatterns("(", "")
		require.Error(t, err)
	})

	t.Run("error - too few groups", func(t *testing.T) {
		_, err := CompilePatterns(`ins_(\d+)\.txt$`, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "4 groups")
	})

	t.Run("error - scenario too few groups", func(t *testing.T) {
		_, err := CompilePatterns("", `w_(\d+)_(\d+)_(\d+)_(\d+)\.txt$`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "5 groups")
	})
}

func TestMatchScenario_ParsesNu(t *testing.T) {
	p := DefaultPatterns()

	key, ok, err := p.matchScenario("wScenarios_N10_K5_Freq2_sCap20_nu0.25.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ssnd.ScenarioKey{N: 10, K: 5, F: 2, C: 20, Nu: 0.25}, key)

	_, ok, err = p.matchScenario("wScenarios_weird.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}
