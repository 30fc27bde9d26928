package salesagent

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var thousandsDots = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// MergeSlots merges slot values extracted by the model into the lead's known slots and returns
// the merged map plus the names that changed. Declared slots are coerced to their type and
// rejected (with a warning) when they do not fit; undeclared keys are kept as given. Empty
// values never overwrite, so a filled slot is never un-filled. existing is not modified.
func MergeSlots(existing, extracted map[string]any, declared []CriticalSlot) (map[string]any, []string, []string) {
	merged := make(map[string]any, len(existing)+len(extracted))
	for k, v := range existing {
		merged[k] = v
	}

	byName := make(map[string]CriticalSlot, len(declared))
	for _, s := range declared {
		byName[s.Name] = s
	}

	keys := make([]string, 0, len(extracted))
	for k := range extracted {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var updated, warnings []string
	for _, k := range keys {
		name := strings.TrimSpace(k)
		v := extracted[k]
		if name == "" || isEmptySlotValue(v) {
			continue
		}
		if slot, ok := byName[name]; ok {
			coerced, err := CoerceSlot(slot, v)
			if err != nil {
				warnings = append(warnings, err.Error())
				continue
			}
			v = coerced
		} else if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		if prev, ok := merged[name]; ok && fmt.Sprint(prev) == fmt.Sprint(v) {
			continue
		}
		merged[name] = v
		updated = append(updated, name)
	}
	return merged, updated, warnings
}

// CoerceSlot converts v to the slot's declared type.
func CoerceSlot(slot CriticalSlot, v any) (any, error) {
	switch slot.Type {
	case SlotNumber:
		switch x := v.(type) {
		case float64:
			return x, nil
		case int:
			return float64(x), nil
		case string:
			f, ok := parseNumber(x)
			if !ok {
				return nil, fmt.Errorf("slot %s: %q is not a number", slot.Name, x)
			}
			return f, nil
		}
		return nil, fmt.Errorf("slot %s: %v is not a number", slot.Name, v)
	case SlotBoolean:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(x)) {
			case "true", "yes", "sim", "s", "y":
				return true, nil
			case "false", "no", "nao", "não", "n":
				return false, nil
			}
		}
		return nil, fmt.Errorf("slot %s: %v is not a boolean", slot.Name, v)
	case SlotEnum:
		s := strings.TrimSpace(fmt.Sprint(v))
		for _, opt := range slot.Options {
			if strings.EqualFold(normalizeToken(opt), normalizeToken(s)) {
				return opt, nil
			}
		}
		return nil, fmt.Errorf("slot %s: %q is not one of %s", slot.Name, s, strings.Join(slot.Options, ", "))
	default:
		s := strings.TrimSpace(fmt.Sprint(v))
		if s == "" {
			return nil, fmt.Errorf("slot %s: empty value", slot.Name)
		}
		return s, nil
	}
}

// parseNumber accepts plain and Brazilian-formatted numbers ("R$ 5.000,50", "1.200", "3,5").
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return 0, false
	}
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		s = strings.Replace(s, ",", ".", 1)
	case thousandsDots.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
