package dna

import (
	"strings"
	"testing"
	"time"
)

func TestLookup_EveryEnumeratedValueHasInstruction(t *testing.T) {
	t.Parallel()

	levels := []Level{LevelLow, LevelMedium, LevelHigh}
	for _, axis := range BigFiveOrder {
		for _, l := range levels {
			if _, ok := Psychometric(axis, l); !ok {
				t.Fatalf("Psychometric(%s,%s) missing", axis, l)
			}
		}
	}
	for _, p := range []Pleasure{PleasureNegative, PleasureNeutral, PleasurePositive} {
		if _, ok := PADPleasure(p); !ok {
			t.Fatalf("PADPleasure(%s) missing", p)
		}
	}
	for _, l := range levels {
		if _, ok := PADArousal(l); !ok {
			t.Fatalf("PADArousal(%s) missing", l)
		}
		if _, ok := Burst(l); !ok {
			t.Fatalf("Burst(%s) missing", l)
		}
	}
	for _, d := range []Dominance{DominanceSubmissive, DominanceEgalitarian, DominanceDominant} {
		if _, ok := PADDominance(d); !ok {
			t.Fatalf("PADDominance(%s) missing", d)
		}
	}
	for _, m := range []CapsMode{CapsStandard, CapsLowercaseOnly, CapsShoutEmphasis} {
		if _, ok := Caps(m); !ok {
			t.Fatalf("Caps(%s) missing", m)
		}
	}
	for _, p := range []ReductionProfile{ReductionCorporate, ReductionNatural, ReductionHeavy} {
		if _, ok := Reduction(p); !ok {
			t.Fatalf("Reduction(%s) missing", p)
		}
	}
	for _, l := range []TypoLevel{TypoNone, TypoLow, TypoMedium, TypoHigh} {
		if _, ok := Typo(l); !ok {
			t.Fatalf("Typo(%s) missing", l)
		}
	}
	for _, c := range []CorrectionStyle{CorrectionNone, CorrectionAsterisk, CorrectionNatural} {
		if _, ok := Correction(c); !ok {
			t.Fatalf("Correction(%s) missing", c)
		}
	}
	for _, p := range []LatencyProfile{LatencyInstant, LatencyHuman, LatencyRelaxed} {
		if _, ok := Latency(p); !ok {
			t.Fatalf("Latency(%s) missing", p)
		}
	}
	for _, r := range []Role{RoleSDR, RoleSupport, RoleCloser, RoleConsultant} {
		text, ok := RoleBlueprint(r)
		if !ok || !strings.Contains(text, string(r)) {
			t.Fatalf("RoleBlueprint(%s)=%q ok=%v", r, text, ok)
		}
	}
	for _, m := range []Methodology{MethodologySPIN, MethodologyBANT, MethodologyChallenger, MethodologySandler, MethodologyGPCT} {
		if _, ok := MethodologySummary(m); !ok {
			t.Fatalf("MethodologySummary(%s) missing", m)
		}
	}
}

func TestLookup_MissIsNotAnError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		category Category
		trait    Trait
		value    string
	}{
		{"NOPE", TraitOpenness, "HIGH"},
		{CategoryPsychometrics, "charisma", "HIGH"},
		{CategoryPsychometrics, TraitOpenness, "EXTREME"},
		{CategoryPsychometrics, TraitOpenness, ""},
		{CategoryLinguistics, TraitRole, "SDR"},
	}
	for _, tc := range cases {
		if text, ok := Lookup(tc.category, tc.trait, tc.value); ok || text != "" {
			t.Fatalf("Lookup(%s,%s,%s)=%q,%v want miss", tc.category, tc.trait, tc.value, text, ok)
		}
	}
	if _, ok := Psychometric(Openness, ""); ok {
		t.Fatalf("unset level should miss")
	}
}

func TestParse_AcceptsAliases(t *testing.T) {
	t.Parallel()

	if l, ok := ParseLevel(" alto "); !ok || l != LevelHigh {
		t.Fatalf("ParseLevel(alto)=%q,%v", l, ok)
	}
	if l, ok := ParseLevel("médio"); !ok || l != LevelMedium {
		t.Fatalf("ParseLevel(médio)=%q,%v", l, ok)
	}
	if l, ok := ParseLevel("baixa"); !ok || l != LevelLow {
		t.Fatalf("ParseLevel(baixa)=%q,%v", l, ok)
	}
	if m, ok := ParseCapsMode("lowercase-only"); !ok || m != CapsLowercaseOnly {
		t.Fatalf("ParseCapsMode=%q,%v", m, ok)
	}
	if r, ok := ParseRole("suporte"); !ok || r != RoleSupport {
		t.Fatalf("ParseRole(suporte)=%q,%v", r, ok)
	}
	if d, ok := ParseDominance("igualitário"); !ok || d != DominanceEgalitarian {
		t.Fatalf("ParseDominance=%q,%v", d, ok)
	}
	if tl, ok := ParseTypoLevel("high"); !ok || tl != TypoHigh {
		t.Fatalf("ParseTypoLevel(high)=%q,%v", tl, ok)
	}
	if tl, ok := ParseTypoLevel("off"); !ok || tl != TypoNone {
		t.Fatalf("ParseTypoLevel(off)=%q,%v", tl, ok)
	}
	if m, ok := ParseMethodology("spin selling"); !ok || m != MethodologySPIN {
		t.Fatalf("ParseMethodology=%q,%v", m, ok)
	}
	if _, ok := ParseLevel("extreme"); ok {
		t.Fatalf("ParseLevel(extreme) should fail")
	}
	if _, ok := ParseRole(""); ok {
		t.Fatalf("ParseRole(\"\") should fail")
	}
}

func TestLatencyWindow(t *testing.T) {
	t.Parallel()

	lo, hi := LatencyWindow(LatencyInstant)
	if lo != 0 || hi != 2*time.Second {
		t.Fatalf("INSTANT=%v..%v", lo, hi)
	}
	lo, hi = LatencyWindow("")
	if lo != 4*time.Second || hi != 15*time.Second {
		t.Fatalf("default=%v..%v", lo, hi)
	}
	lo, hi = LatencyWindow(LatencyRelaxed)
	if lo >= hi {
		t.Fatalf("RELAXED=%v..%v", lo, hi)
	}
}
