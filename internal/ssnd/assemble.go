package ssnd

import "fmt"

// requiredHeaderKeys must all be present before an Instance can be
// assembled. Name is not among them: it defaults to a string synthesized
// from the filename parameters.
var requiredHeaderKeys = []string{
	"NodeSize",
	"TimePeriods",
	"RequestSize",
	"ServiceNoPerArc",
	"ServiceCapacity",
	"FastServiceRatio",
	"RevenueRange",
	"ReqDemandRange",
	"ServiceCost",
	"Trans/HoldingCost",
}

// ParseInstance parses the full text of one instance file into an Instance.
// key carries the four parameters extracted from the filename; they supply
// the default name when the header has none.
func ParseInstance(text string, key InstanceKey) (*Instance, error) {
	secs := splitSections(text)

	header, err := parseHeader(secs.Header)
	if err != nil {
		return nil, err
	}
	for _, k := range requiredHeaderKeys {
		if !header.seen[k] {
			return nil, &MissingFieldError{Key: k}
		}
	}

	var physical []NodePair
	if secs.HasArcs {
		physical, err = parseNodePairListToken(secs.Arcs)
		if err != nil {
			return nil, wrapRow(sectionArcs, secs.Arcs, err)
		}
	}

	svc, err := parseServices(secs.Tables[sectionServices])
	if err != nil {
		return nil, err
	}
	reqs, err := parseReqs(secs.Tables[sectionReqs])
	if err != nil {
		return nil, err
	}
	hold, err := parseHolding(secs.Tables[sectionHolding])
	if err != nil {
		return nil, err
	}
	psis, err := parsePsis(secs.Tables[sectionPsi])
	if err != nil {
		return nil, err
	}
	arcsIn, err := parseExecLists(sectionEin, secs.Tables[sectionEin])
	if err != nil {
		return nil, err
	}
	arcsOut, err := parseExecLists(sectionEout, secs.Tables[sectionEout])
	if err != nil {
		return nil, err
	}

	name := header.Name
	if !header.HasName {
		name = DefaultInstanceName(key)
	}

	// Capacity is uniform across an instance's services: every service arc
	// gets the header's ServiceCapacity, whatever the rows said.
	us := make(map[Arc]float64, len(svc.Arcs))
	for _, a := range svc.Arcs {
		us[a] = float64(header.ServiceCapacity)
	}

	return &Instance{
		Name:             name,
		NodeSize:         header.NodeSize,
		TimePeriods:      header.TimePeriods,
		RequestSize:      header.RequestSize,
		ServiceNoPerArc:  header.ServiceNoPerArc,
		ServiceCapacity:  header.ServiceCapacity,
		FastServiceRatio: header.FastServiceRatio,
		RevenueRange:     header.RevenueRange,
		ReqDemandRange:   header.ReqDemandRange,
		ServiceCost:      header.ServiceCost,
		TransCost:        header.TransCost,
		HoldingCost:      header.HoldingCost,
		Extra:            header.Extra,
		PhysicalArcs:     physical,
		Services:         svc.Arcs,
		Cs:               svc.Cs,
		Fs:               svc.Fs,
		Us:               us,
		Reqs:             reqs.IDs,
		Origins:          reqs.Origins,
		Dests:            reqs.Dests,
		Alphas:           reqs.Alphas,
		Betas:            reqs.Betas,
		Contract:         reqs.Contract,
		Rhos:             reqs.Rhos,
		Ws:               reqs.Ws,
		HoldingArcs:      hold.Arcs,
		Chs:              hold.Chs,
		AlphaPsis:        psis.Alpha,
		BetaPsis:         psis.Beta,
		ArcsIn:           arcsIn,
		ArcsOut:          arcsOut,
	}, nil
}

// DefaultInstanceName synthesizes the canonical instance name from its
// filename parameters.
func DefaultInstanceName(key InstanceKey) string {
	return fmt.Sprintf("ins_N%d_K%d_Freq%d_sCap%d", key.N, key.K, key.F, key.C)
}
