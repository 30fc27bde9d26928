package salesagent

import (
	"strings"
	"testing"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"5000":          5000,
		"R$ 5.000,50":   5000.5,
		"1.200":         1200,
		"3,5":           3.5,
		"1,234.75":      1234.75,
		"12.5":          12.5,
		"-40":           -40,
		"uns 300 reais": 300,
	}
	for in, want := range cases {
		got, ok := parseNumber(in)
		if !ok || got != want {
			t.Fatalf("parseNumber(%q)=%v,%v want %v", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "muito", "1.2.3,4,5"} {
		if _, ok := parseNumber(in); ok {
			t.Fatalf("parseNumber(%q) should fail", in)
		}
	}
}

func TestCoerceSlot(t *testing.T) {
	t.Parallel()

	enum := CriticalSlot{Name: "plan", Type: SlotEnum, Options: []string{"Básico", "Pro"}}
	if v, err := CoerceSlot(enum, "basico"); err != nil || v != "Básico" {
		t.Fatalf("enum coerce=%v,%v", v, err)
	}
	if _, err := CoerceSlot(enum, "Gold"); err == nil {
		t.Fatalf("enum outside options accepted")
	}

	boolean := CriticalSlot{Name: "owner", Type: SlotBoolean}
	if v, err := CoerceSlot(boolean, "Sim"); err != nil || v != true {
		t.Fatalf("bool coerce=%v,%v", v, err)
	}
	if _, err := CoerceSlot(boolean, "talvez"); err == nil {
		t.Fatalf("non-boolean accepted")
	}

	number := CriticalSlot{Name: "budget", Type: SlotNumber}
	if v, err := CoerceSlot(number, 12); err != nil || v != float64(12) {
		t.Fatalf("int coerce=%v,%v", v, err)
	}
	if _, err := CoerceSlot(number, true); err == nil {
		t.Fatalf("bool accepted as number")
	}

	if v, err := CoerceSlot(CriticalSlot{Name: "city"}, "  Recife "); err != nil || v != "Recife" {
		t.Fatalf("string coerce=%v,%v", v, err)
	}
}

func TestMergeSlots(t *testing.T) {
	t.Parallel()

	existing := map[string]any{"city": "Recife", "budget": float64(3000)}
	extracted := map[string]any{
		"budget":   "R$ 5.000",
		"city":     "",
		"plan":     "gold",
		"owner":    "não",
		"nickname": " Cadu ",
		"same":     nil,
	}
	declared := []CriticalSlot{
		{Name: "budget", Type: SlotNumber},
		{Name: "plan", Type: SlotEnum, Options: []string{"A", "B"}},
		{Name: "owner", Type: SlotBoolean},
	}

	merged, updated, warnings := MergeSlots(existing, extracted, declared)

	if merged["budget"] != float64(5000) {
		t.Fatalf("budget=%v", merged["budget"])
	}
	if merged["city"] != "Recife" {
		t.Fatalf("empty value overwrote city: %v", merged["city"])
	}
	if _, ok := merged["plan"]; ok {
		t.Fatalf("invalid enum merged")
	}
	if merged["owner"] != false {
		t.Fatalf("owner=%v", merged["owner"])
	}
	if merged["nickname"] != "Cadu" {
		t.Fatalf("nickname=%q", merged["nickname"])
	}
	if got := strings.Join(updated, ","); got != "budget,nickname,owner" {
		t.Fatalf("updated=%s", got)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "slot plan") {
		t.Fatalf("warnings=%v", warnings)
	}
	if existing["budget"] != float64(3000) {
		t.Fatalf("existing map mutated")
	}

	// Re-merging the same values reports nothing new.
	_, updated, _ = MergeSlots(merged, map[string]any{"budget": 5000.0}, declared)
	if len(updated) != 0 {
		t.Fatalf("updated=%v", updated)
	}
}
