package refdata

import "testing"

func TestPopulationLookup(t *testing.T) {
	pops := New()

	got, err := pops.Population(BritishColumbia)
	if err != nil {
		t.Fatalf("Population(%q) error: %v", BritishColumbia, err)
	}
	if got != 5214805 {
		t.Errorf("Population(%q) = %d, want 5214805", BritishColumbia, got)
	}

	if _, err := pops.Population("Atlantis"); err == nil {
		t.Error("expected error for unknown jurisdiction, got nil")
	}
}

func TestOverrideVisibleToReaders(t *testing.T) {
	pops := New()

	if err := pops.Override(Nunavut, 38000); err != nil {
		t.Fatalf("Override error: %v", err)
	}

	got, err := pops.Population(Nunavut)
	if err != nil {
		t.Fatalf("Population error: %v", err)
	}
	if got != 38000 {
		t.Errorf("Population(%q) after override = %d, want 38000", Nunavut, got)
	}

	ov := pops.Overrides()
	if len(ov) != 1 || ov[Nunavut] != 38000 {
		t.Errorf("Overrides() = %v, want map[%s:38000]", ov, Nunavut)
	}
}

func TestOverrideRejections(t *testing.T) {
	pops := New()

	if err := pops.Override(Aggregate, 40000000); err == nil {
		t.Error("expected error overriding aggregate denominator, got nil")
	}
	if err := pops.Override("Atlantis", 100); err == nil {
		t.Error("expected error overriding unknown jurisdiction, got nil")
	}
	if err := pops.Override(Yukon, 0); err == nil {
		t.Error("expected error for non-positive population, got nil")
	}
}

func TestProvincesAndTerritories(t *testing.T) {
	names := ProvincesAndTerritories()
	if len(names) != 13 {
		t.Fatalf("got %d jurisdictions, want 13", len(names))
	}
	for _, name := range names {
		if name == Aggregate {
			t.Errorf("aggregate %q must not be listed", Aggregate)
		}
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not in stable sorted order: %q before %q", names[i-1], names[i])
		}
	}
}
