package ssnd

import (
	"fmt"
	"strconv"
	"strings"
)

// wrapRow adds section and row context to a literal error without hiding its
// type from errors.As.
func wrapRow(section, line string, err error) error {
	return fmt.Errorf("section %s: row %q: %w", section, line, err)
}

// headerFields is the decoded HEADER section. seen tracks which known keys
// were present so the assembler can report the first missing required one.
type headerFields struct {
	Name             string
	HasName          bool
	NodeSize         int
	RequestSize      int
	ServiceNoPerArc  int
	ServiceCapacity  int
	ServiceCost      int
	FastServiceRatio float64
	TimePeriods      []int
	RevenueRange     [2]IntRange
	ReqDemandRange   IntRange
	TransCost        int
	HoldingCost      int
	Extra            map[string]string

	seen map[string]bool
}

// parseHeader interprets the raw HEADER key/value pairs. Known keys get typed
// decoding; anything else is kept verbatim in Extra so newer generator
// fields pass through instead of failing the load.
func parseHeader(raw map[string]string) (headerFields, error) {
	h := headerFields{
		Extra: make(map[string]string),
		seen:  make(map[string]bool),
	}
	for key, val := range raw {
		val = strings.TrimSpace(val)
		line := key + " " + val
		switch key {
		case "NodeSize", "RequestSize", "ServiceNoPerArc", "ServiceCapacity", "ServiceCost":
			n, err := strconv.Atoi(val)
			if err != nil {
				return h, rowErrf(sectionHeader, line, "%s must be an integer", key)
			}
			switch key {
			case "NodeSize":
				h.NodeSize = n
			case "RequestSize":
				h.RequestSize = n
			case "ServiceNoPerArc":
				h.ServiceNoPerArc = n
			case "ServiceCapacity":
				h.ServiceCapacity = n
			case "ServiceCost":
				h.ServiceCost = n
			}
		case "FastServiceRatio":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return h, rowErrf(sectionHeader, line, "FastServiceRatio must be a number")
			}
			h.FastServiceRatio = f
		case "TimePeriods":
			periods, err := parseIntListToken(val)
			if err != nil {
				return h, wrapRow(sectionHeader, line, err)
			}
			h.TimePeriods = periods
		case "RevenueRange":
			rr, err := parseRangePairToken(val)
			if err != nil {
				return h, wrapRow(sectionHeader, line, err)
			}
			h.RevenueRange = rr
		case "ReqDemandRange":
			lo, hi, err := parseIntPairToken(val)
			if err != nil {
				return h, wrapRow(sectionHeader, line, err)
			}
			h.ReqDemandRange = IntRange{Lo: lo, Hi: hi}
		case "Trans/HoldingCost":
			trans, hold, err := parseIntPairToken(val)
			if err != nil {
				return h, wrapRow(sectionHeader, line, err)
			}
			h.TransCost = trans
			h.HoldingCost = hold
		case "Name":
			h.Name = val
			h.HasName = true
		default:
			h.Extra[key] = val
		}
		h.seen[key] = true
	}
	return h, nil
}

// servicesTable is the decoded SERVICES section.
type servicesTable struct {
	Arcs []Arc
	Cs   map[Arc]float64
	Fs   map[Arc]float64
}

// parseServices decodes rows of 8 tab-separated fields. Only the arc literal
// and the two cost fields are retained; the positional origin/alpha/
// destination/beta fields duplicate the arc and are not cross-checked.
func parseServices(rows []string) (servicesTable, error) {
	out := servicesTable{
		Arcs: make([]Arc, 0, len(rows)),
		Cs:   make(map[Arc]float64, len(rows)),
		Fs:   make(map[Arc]float64, len(rows)),
	}
	for _, ln := range rows {
		parts := strings.Split(ln, "\t")
		if len(parts) != 8 {
			return out, rowErrf(sectionServices, ln, "expected 8 fields, got %d", len(parts))
		}
		if _, err := strconv.Atoi(parts[0]); err != nil {
			return out, rowErrf(sectionServices, ln, "service id must be an integer")
		}
		arc, err := parseArcToken(parts[1])
		if err != nil {
			return out, wrapRow(sectionServices, ln, err)
		}
		c, err := strconv.ParseFloat(parts[6], 64)
		if err != nil {
			return out, rowErrf(sectionServices, ln, "transshipment cost must be a number")
		}
		f, err := strconv.ParseFloat(parts[7], 64)
		if err != nil {
			return out, rowErrf(sectionServices, ln, "fixed cost must be a number")
		}
		out.Arcs = append(out.Arcs, arc)
		out.Cs[arc] = c
		out.Fs[arc] = f
	}
	return out, nil
}

// reqsTable is the decoded REQS section.
type reqsTable struct {
	IDs      []int
	Origins  map[int]int
	Dests    map[int]int
	Alphas   map[int]int
	Betas    map[int]int
	Contract map[int]bool
	Rhos     map[int]float64
	Ws       map[int]int
}

func parseReqs(rows []string) (reqsTable, error) {
	out := reqsTable{
		IDs:      make([]int, 0, len(rows)),
		Origins:  make(map[int]int, len(rows)),
		Dests:    make(map[int]int, len(rows)),
		Alphas:   make(map[int]int, len(rows)),
		Betas:    make(map[int]int, len(rows)),
		Contract: make(map[int]bool, len(rows)),
		Rhos:     make(map[int]float64, len(rows)),
		Ws:       make(map[int]int, len(rows)),
	}
	for _, ln := range rows {
		parts := strings.Split(ln, "\t")
		if len(parts) != 8 {
			return out, rowErrf(sectionReqs, ln, "expected 8 fields, got %d", len(parts))
		}
		ints := make([]int, 5)
		for i, name := range []string{"request id", "origin", "destination", "alpha", "beta"} {
			n, err := strconv.Atoi(parts[i])
			if err != nil {
				return out, rowErrf(sectionReqs, ln, "%s must be an integer", name)
			}
			ints[i] = n
		}
		rho, err := strconv.ParseFloat(parts[6], 64)
		if err != nil {
			return out, rowErrf(sectionReqs, ln, "revenue rate must be a number")
		}
		w, err := strconv.Atoi(parts[7])
		if err != nil {
			return out, rowErrf(sectionReqs, ln, "baseline demand must be an integer")
		}
		k := ints[0]
		out.IDs = append(out.IDs, k)
		out.Origins[k] = ints[1]
		out.Dests[k] = ints[2]
		out.Alphas[k] = ints[3]
		out.Betas[k] = ints[4]
		out.Contract[k] = strings.EqualFold(strings.TrimSpace(parts[5]), "true")
		out.Rhos[k] = rho
		out.Ws[k] = w
	}
	return out, nil
}

// holdingTable is the decoded HOLDING section.
type holdingTable struct {
	Arcs []Arc
	Chs  map[Arc]float64
}

func parseHolding(rows []string) (holdingTable, error) {
	out := holdingTable{
		Arcs: make([]Arc, 0, len(rows)),
		Chs:  make(map[Arc]float64, len(rows)),
	}
	for _, ln := range rows {
		parts := strings.Split(ln, "\t")
		if len(parts) != 2 {
			return out, rowErrf(sectionHolding, ln, "expected 2 fields, got %d", len(parts))
		}
		arc, err := parseArcToken(parts[0])
		if err != nil {
			return out, wrapRow(sectionHolding, ln, err)
		}
		cost, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return out, rowErrf(sectionHolding, ln, "holding cost must be a number")
		}
		out.Arcs = append(out.Arcs, arc)
		out.Chs[arc] = cost
	}
	return out, nil
}

// psiTable is the decoded PSI section: time-window violation penalties keyed
// by (request, period).
type psiTable struct {
	Alpha map[ReqTime]float64
	Beta  map[ReqTime]float64
}

func parsePsis(rows []string) (psiTable, error) {
	out := psiTable{
		Alpha: make(map[ReqTime]float64, len(rows)),
		Beta:  make(map[ReqTime]float64, len(rows)),
	}
	for _, ln := range rows {
		parts := strings.Split(ln, "\t")
		if len(parts) != 4 {
			return out, rowErrf(sectionPsi, ln, "expected 4 fields, got %d", len(parts))
		}
		k, err := strconv.Atoi(parts[0])
		if err != nil {
			return out, rowErrf(sectionPsi, ln, "request id must be an integer")
		}
		t, err := strconv.Atoi(parts[1])
		if err != nil {
			return out, rowErrf(sectionPsi, ln, "time period must be an integer")
		}
		apsi, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return out, rowErrf(sectionPsi, ln, "alpha penalty must be a number")
		}
		bpsi, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return out, rowErrf(sectionPsi, ln, "beta penalty must be a number")
		}
		key := ReqTime{Req: k, Time: t}
		out.Alpha[key] = apsi
		out.Beta[key] = bpsi
	}
	return out, nil
}

// parseExecLists decodes an EIN or EOUT section into per-time-node arc
// adjacency. An empty arc-list token is an empty list; since line trimming
// eats a trailing tab, a time node with no adjacent arcs may arrive as a
// single-field row and is treated the same way.
func parseExecLists(section string, rows []string) (map[TimeNode][]Arc, error) {
	out := make(map[TimeNode][]Arc, len(rows))
	for _, ln := range rows {
		parts := strings.Split(ln, "\t")
		if len(parts) > 2 {
			return out, rowErrf(section, ln, "expected 2 fields, got %d", len(parts))
		}
		tn, err := parseTimeNodeToken(parts[0])
		if err != nil {
			return out, wrapRow(section, ln, err)
		}
		arcsToken := ""
		if len(parts) == 2 {
			arcsToken = parts[1]
		}
		arcs, err := parseArcListToken(arcsToken)
		if err != nil {
			return out, wrapRow(section, ln, err)
		}
		out[tn] = arcs
	}
	return out, nil
}
