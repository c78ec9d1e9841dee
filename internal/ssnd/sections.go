package ssnd

import "strings"

// Section names, used in RowError context.
const (
	sectionHeader   = "HEADER"
	sectionArcs     = "ARCS"
	sectionServices = "SERVICES"
	sectionReqs     = "REQS"
	sectionHolding  = "HOLDING"
	sectionPsi      = "PSI"
	sectionEin      = "EIN"
	sectionEout     = "EOUT"
)

// arcsPrefix introduces the single-line physical topology section and
// terminates the header scan.
const arcsPrefix = "Arcs "

// tableSpec declares one table of the instance grammar: its name and the
// verbatim header row that introduces it.
type tableSpec struct {
	name      string
	headerRow string
}

// tableGrammar lists the tables in the fixed order they appear in a file.
// The splitter is a scan over this list; recognizing a new table, or
// tolerating reordering, is a change to this data, not to the scan.
var tableGrammar = []tableSpec{
	{sectionServices, "serviceID\tServices\torigin\talpha\tdestination\tbeta\tTranCost\tfs"},
	{sectionReqs, "reqs\torigins\tdestinations\talphas\tbetas\tcontract_based\trhos\tws"},
	{sectionHolding, "HoldingArcs\tHoldingCost"},
	{sectionPsi, "reqs\ttimes\talphaPsi\tbetaPsi"},
	{sectionEin, "TimeNodes\tExecArcsIn"},
	{sectionEout, "TimeNodes\tExecArcsOut"},
}

// fileSections is the raw, line-level decomposition of one instance file.
// Every table is optional; an absent table has no entry in Tables.
type fileSections struct {
	Header  map[string]string // key -> raw value text
	HasArcs bool
	Arcs    string // remainder of the "Arcs " line
	Tables  map[string][]string
}

// splitSections partitions the file text into named sections. It never
// fails: unrecognized lines in the header region are skipped and tables
// whose header row does not appear (or appears out of order) are absent.
func splitSections(text string) fileSections {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSpace(ln)
	}

	out := fileSections{
		Header: make(map[string]string),
		Tables: make(map[string][]string),
	}

	// Header: `key value` pairs until the "Arcs " line.
	i := 0
	for i < len(lines) {
		ln := lines[i]
		if strings.HasPrefix(ln, arcsPrefix) {
			break
		}
		if ln != "" {
			if key, val, ok := strings.Cut(ln, " "); ok {
				out.Header[key] = val
			}
		}
		i++
	}

	// Physical arcs: a single line.
	if i < len(lines) && strings.HasPrefix(lines[i], arcsPrefix) {
		out.HasArcs = true
		out.Arcs = lines[i][len(arcsPrefix):]
		i++
	}

	// Tables, in grammar order. Each is introduced by its exact header row
	// and runs until the next blank line or EOF.
	for _, spec := range tableGrammar {
		for i < len(lines) && lines[i] == "" {
			i++
		}
		if i >= len(lines) || lines[i] != spec.headerRow {
			continue
		}
		i++
		var rows []string
		for i < len(lines) && lines[i] != "" {
			rows = append(rows, lines[i])
			i++
		}
		out.Tables[spec.name] = rows
	}

	return out
}
