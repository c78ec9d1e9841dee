package ssnd

import (
	"strconv"
	"strings"
)

// scenarioSection names the (single) row format of a scenario file in errors.
const scenarioSection = "SCENARIOS"

// ParseScenarioSet parses the full text of one demand-scenario file. The
// file has no sections: an optional header line starting with "reqs", then
// one row per request of `id \t baseline \t d1;d2;...;dn`. Empty draw tokens
// (doubled or trailing semicolons) are dropped, not errors.
func ParseScenarioSet(text string, key ScenarioKey) (*ScenarioSet, error) {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) > 0 && strings.HasPrefix(lines[0], "reqs") {
		lines = lines[1:]
	}

	set := &ScenarioSet{
		NodeSize: key.N,
		Kmax:     key.K,
		Freq:     key.F,
		ServCap:  key.C,
		Nu:       key.Nu,
		Mu:       make(map[int]int, len(lines)),
		Draws:    make(map[int][]int, len(lines)),
	}
	for _, ln := range lines {
		parts := strings.Split(ln, "\t")
		if len(parts) != 3 {
			return nil, rowErrf(scenarioSection, ln, "expected 3 fields, got %d", len(parts))
		}
		k, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, rowErrf(scenarioSection, ln, "request id must be an integer")
		}
		mu, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, rowErrf(scenarioSection, ln, "baseline mean must be an integer")
		}
		var draws []int
		for _, tok := range strings.Split(parts[2], ";") {
			if tok == "" {
				continue
			}
			d, err := strconv.Atoi(tok)
			if err != nil {
				return nil, rowErrf(scenarioSection, ln, "draw %q must be an integer", tok)
			}
			draws = append(draws, d)
		}
		set.Mu[k] = mu
		set.Draws[k] = draws
	}
	return set, nil
}
