package ssnd

import "fmt"

// TimeNode identifies a node in the time-expanded network as a
// (physical node, time period) pair. It is a comparable value type and is
// used as a map key throughout.
type TimeNode struct {
	Node int
	Time int
}

// String renders the node in the source file's literal form, e.g. "(2,1)".
func (tn TimeNode) String() string {
	return fmt.Sprintf("(%d,%d)", tn.Node, tn.Time)
}

// Arc is a directed time-expanded edge between two TimeNodes. Comparable,
// usable as a map key.
type Arc struct {
	From TimeNode
	To   TimeNode
}

// String renders the arc in the source file's literal form, e.g. "((1,0),(2,1))".
func (a Arc) String() string {
	return fmt.Sprintf("(%s,%s)", a.From, a.To)
}

// NodePair is a physical (non-time-expanded) arc between two node ids.
type NodePair struct {
	From int
	To   int
}

// ReqTime keys the penalty tables by (request id, time period).
type ReqTime struct {
	Req  int
	Time int
}

// IntRange is an inclusive (low, high) bound pair.
type IntRange struct {
	Lo int
	Hi int
}

// InstanceKey holds the four parameters embedded in an instance filename.
type InstanceKey struct {
	N int // node count
	K int // max requests
	F int // frequency
	C int // per-service capacity
}

// ScenarioKey extends InstanceKey with the risk/variability parameter nu
// embedded in a scenario filename.
type ScenarioKey struct {
	N  int
	K  int
	F  int
	C  int
	Nu float64
}

// Instance is the fully assembled record for one SSND problem instance.
// It is constructed once per source file and not mutated afterwards.
type Instance struct {
	Name             string
	NodeSize         int
	TimePeriods      []int
	RequestSize      int
	ServiceNoPerArc  int
	ServiceCapacity  int
	FastServiceRatio float64
	RevenueRange     [2]IntRange
	ReqDemandRange   IntRange
	ServiceCost      int
	TransCost        int
	HoldingCost      int

	// Extra holds header keys the parser does not recognize, verbatim.
	// Unknown keys are kept rather than rejected so newer generator output
	// still loads.
	Extra map[string]string

	// Physical topology.
	PhysicalArcs []NodePair

	// Offered services and their per-arc costs. Us is derived: every service
	// arc carries the instance's uniform ServiceCapacity.
	Services []Arc
	Cs       map[Arc]float64 // transshipment cost
	Fs       map[Arc]float64 // fixed/setup cost
	Us       map[Arc]float64 // capacity

	// Requests and their per-request attributes.
	Reqs     []int
	Origins  map[int]int
	Dests    map[int]int
	Alphas   map[int]int
	Betas    map[int]int
	Contract map[int]bool
	Rhos     map[int]float64 // unit revenue
	Ws       map[int]int     // baseline demand

	// Holding arcs and their costs.
	HoldingArcs []Arc
	Chs         map[Arc]float64

	// Time-window violation penalties keyed by (request, period).
	AlphaPsis map[ReqTime]float64
	BetaPsis  map[ReqTime]float64

	// Execution adjacency: arcs entering / leaving each time node.
	ArcsIn  map[TimeNode][]Arc
	ArcsOut map[TimeNode][]Arc
}

// Validate cross-checks the structural invariants the parser itself does not
// enforce: the cost/capacity maps must be keyed by exactly the service list,
// and every request attribute map must be total over Reqs. It deliberately
// does not range-check TimeNode times against TimePeriods; source data is
// assumed consistent there.
func (inst *Instance) Validate() error {
	if len(inst.TimePeriods) == 0 {
		return fmt.Errorf("instance %q: empty TimePeriods", inst.Name)
	}
	svcSet := make(map[Arc]int, len(inst.Services))
	for _, a := range inst.Services {
		svcSet[a]++
	}
	for name, m := range map[string]map[Arc]float64{"cs": inst.Cs, "fs": inst.Fs, "us": inst.Us} {
		if len(m) != len(svcSet) {
			return fmt.Errorf("instance %q: %s has %d keys, want %d service arcs", inst.Name, name, len(m), len(svcSet))
		}
		for a := range m {
			if svcSet[a] == 0 {
				return fmt.Errorf("instance %q: %s keyed by non-service arc %s", inst.Name, name, a)
			}
		}
	}
	reqSet := make(map[int]bool, len(inst.Reqs))
	for _, k := range inst.Reqs {
		if reqSet[k] {
			return fmt.Errorf("instance %q: duplicate request id %d", inst.Name, k)
		}
		reqSet[k] = true
	}
	for _, k := range inst.Reqs {
		if _, ok := inst.Origins[k]; !ok {
			return fmt.Errorf("instance %q: request %d missing origin", inst.Name, k)
		}
		if _, ok := inst.Dests[k]; !ok {
			return fmt.Errorf("instance %q: request %d missing destination", inst.Name, k)
		}
		if _, ok := inst.Alphas[k]; !ok {
			return fmt.Errorf("instance %q: request %d missing alpha", inst.Name, k)
		}
		if _, ok := inst.Betas[k]; !ok {
			return fmt.Errorf("instance %q: request %d missing beta", inst.Name, k)
		}
		if _, ok := inst.Contract[k]; !ok {
			return fmt.Errorf("instance %q: request %d missing contract flag", inst.Name, k)
		}
		if _, ok := inst.Rhos[k]; !ok {
			return fmt.Errorf("instance %q: request %d missing revenue rate", inst.Name, k)
		}
		if _, ok := inst.Ws[k]; !ok {
			return fmt.Errorf("instance %q: request %d missing baseline demand", inst.Name, k)
		}
	}
	return nil
}

// ScenarioSet is the record for one (instance parameters, nu) combination.
// NodeSize/Kmax/Freq/ServCap duplicate the identifying parameters of the
// matching instance and are carried for convenience.
type ScenarioSet struct {
	NodeSize int
	Kmax     int
	Freq     int
	ServCap  int
	Nu       float64

	// Mu maps request id to its baseline mean demand.
	Mu map[int]int
	// Draws maps request id to its ordered scenario realizations.
	Draws map[int][]int
}
