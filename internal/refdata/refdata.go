package refdata

import (
	"fmt"
	"sort"
)

// Canonical jurisdiction names, matching the display names the agency file
// uses. Everything downstream joins on these strings.
const (
	Alberta                 = "Alberta"
	BritishColumbia         = "British Columbia"
	Manitoba                = "Manitoba"
	NewBrunswick            = "New Brunswick"
	NewfoundlandAndLabrador = "Newfoundland and Labrador"
	NorthwestTerritories    = "Northwest Territories"
	NovaScotia              = "Nova Scotia"
	Nunavut                 = "Nunavut"
	Ontario                 = "Ontario"
	PrinceEdwardIsland      = "Prince Edward Island"
	Quebec                  = "Quebec"
	Saskatchewan            = "Saskatchewan"
	Yukon                   = "Yukon"

	// Aggregate is the whole-country row present in the agency file. It is
	// validated like any jurisdiction but dropped from the output domain.
	Aggregate = "Canada"
)

// Statistics Canada population estimates, 2021 Q3. These are the published
// census denominators; two territories get corrected after the agency file
// is reconciled (see the phac package).
var censusPopulations = map[string]int{
	NewfoundlandAndLabrador: 520553,
	PrinceEdwardIsland:      164318,
	NovaScotia:              992055,
	NewBrunswick:            789225,
	Quebec:                  8604495,
	Ontario:                 14826276,
	Manitoba:                1383765,
	Saskatchewan:            1179844,
	Alberta:                 4442879,
	BritishColumbia:         5214805,
	Yukon:                   42986,
	NorthwestTerritories:    45504,
	Nunavut:                 39403,
	Aggregate:               38246108,
}

// Populations holds the denominator for every jurisdiction plus the
// aggregate. It is built once per run and passed explicitly into both
// loaders: the primary loader installs denominator corrections through
// Override, the secondary loader reads the corrected values back out, so
// the ordering between the two is a visible data dependency.
type Populations struct {
	byName    map[string]int
	overrides map[string]int
}

func New() *Populations {
	byName := make(map[string]int, len(censusPopulations))
	for name, pop := range censusPopulations {
		byName[name] = pop
	}
	return &Populations{
		byName:    byName,
		overrides: map[string]int{},
	}
}

// Population returns the current denominator for a jurisdiction, corrected
// if an override has been applied.
func (p *Populations) Population(name string) (int, error) {
	pop, ok := p.byName[name]
	if !ok {
		return 0, fmt.Errorf("refdata: unknown jurisdiction %q", name)
	}
	return pop, nil
}

// Override replaces a jurisdiction's denominator. The aggregate denominator
// is never corrected.
func (p *Populations) Override(name string, pop int) error {
	if name == Aggregate {
		return fmt.Errorf("refdata: aggregate denominator cannot be overridden")
	}
	if _, ok := p.byName[name]; !ok {
		return fmt.Errorf("refdata: unknown jurisdiction %q", name)
	}
	if pop <= 0 {
		return fmt.Errorf("refdata: invalid population %d for %s", pop, name)
	}
	p.byName[name] = pop
	p.overrides[name] = pop
	return nil
}

// Overrides reports every correction applied so far, for audit logging.
func (p *Populations) Overrides() map[string]int {
	out := make(map[string]int, len(p.overrides))
	for name, pop := range p.overrides {
		out[name] = pop
	}
	return out
}

// Known reports whether a name is in the canonical vocabulary (including
// the aggregate).
func (p *Populations) Known(name string) bool {
	_, ok := p.byName[name]
	return ok
}

// ProvincesAndTerritories returns the 13 jurisdiction names (aggregate
// excluded) in stable alphabetical order.
func ProvincesAndTerritories() []string {
	names := make([]string, 0, len(censusPopulations)-1)
	for name := range censusPopulations {
		if name == Aggregate {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
