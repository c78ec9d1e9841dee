package loader

import (
	"fmt"
	"path"
	"regexp"
	"strconv"

	"github.com/alihassanzadehk/ssnd-benchmark/internal/ssnd"
)

// The canonical filename layouts written by the instance generator.
const (
	DefaultInstancePattern = `ins_N(\d+)_K(\d+)_Freq(\d+)_sCap(\d+)\.txt$`
	DefaultScenarioPattern = `wScenarios_N(\d+)_K(\d+)_Freq(\d+)_sCap(\d+)_nu([\d.]+)\.txt$`
)

// Patterns holds the two filename regexes. The instance pattern must capture
// four integer groups (N, K, Freq, sCap) in order; the scenario pattern those
// four plus a float group for nu. Patterns are matched against the base name
// of each entry.
type Patterns struct {
	Instance *regexp.Regexp
	Scenario *regexp.Regexp
}

// DefaultPatterns returns the canonical generator patterns.
func DefaultPatterns() Patterns {
	return Patterns{
		Instance: regexp.MustCompile(DefaultInstancePattern),
		Scenario: regexp.MustCompile(DefaultScenarioPattern),
	}
}

// CompilePatterns builds Patterns from user-supplied expressions, enforcing
// the capture-group contract. Empty strings select the defaults.
func CompilePatterns(instance, scenario string) (Patterns, error) {
	p := DefaultPatterns()
	if instance != "" {
		re, err := regexp.Compile(instance)
		if err != nil {
			return Patterns{}, fmt.Errorf("loader: instance pattern: %w", err)
		}
		if re.NumSubexp() < 4 {
			return Patterns{}, fmt.Errorf("loader: instance pattern must capture 4 groups (N, K, Freq, sCap), has %d", re.NumSubexp())
		}
		p.Instance = re
	}
	if scenario != "" {
		re, err := regexp.Compile(scenario)
		if err != nil {
			return Patterns{}, fmt.Errorf("loader: scenario pattern: %w", err)
		}
		if re.NumSubexp() < 5 {
			return Patterns{}, fmt.Errorf("loader: scenario pattern must capture 5 groups (N, K, Freq, sCap, nu), has %d", re.NumSubexp())
		}
		p.Scenario = re
	}
	return p, nil
}

// matchInstance extracts an InstanceKey from an entry name, or reports no
// match. A pattern that matches but captures non-integers is a configuration
// defect and surfaces as an error.
func (p Patterns) matchInstance(name string) (ssnd.InstanceKey, bool, error) {
	m := p.Instance.FindStringSubmatch(path.Base(name))
	if m == nil {
		return ssnd.InstanceKey{}, false, nil
	}
	nums, err := atoiAll(m[1:5])
	if err != nil {
		return ssnd.InstanceKey{}, false, fmt.Errorf("loader: instance pattern matched %q with non-integer group: %w", name, err)
	}
	return ssnd.InstanceKey{N: nums[0], K: nums[1], F: nums[2], C: nums[3]}, true, nil
}

// matchScenario extracts a ScenarioKey from an entry name, or reports no
// match.
func (p Patterns) matchScenario(name string) (ssnd.ScenarioKey, bool, error) {
	m := p.Scenario.FindStringSubmatch(path.Base(name))
	if m == nil {
		return ssnd.ScenarioKey{}, false, nil
	}
	nums, err := atoiAll(m[1:5])
	if err != nil {
		return ssnd.ScenarioKey{}, false, fmt.Errorf("loader: scenario pattern matched %q with non-integer group: %w", name, err)
	}
	nu, err := strconv.ParseFloat(m[5], 64)
	if err != nil {
		return ssnd.ScenarioKey{}, false, fmt.Errorf("loader: scenario pattern matched %q with non-numeric nu group: %w", name, err)
	}
	return ssnd.ScenarioKey{N: nums[0], K: nums[1], F: nums[2], C: nums[3], Nu: nu}, true, nil
}

func atoiAll(groups []string) ([]int, error) {
	out := make([]int, len(groups))
	for i, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
