package salesagent

import "strings"

// NormalizeObjections dedupes objection entries by trigger (case and spacing insensitive),
// keeping the first position and the longer response.
func NormalizeObjections(in []Objection) []Objection {
	if len(in) == 0 {
		return nil
	}
	index := make(map[string]int, len(in))
	out := make([]Objection, 0, len(in))
	for _, o := range in {
		o.Trigger = strings.TrimSpace(o.Trigger)
		o.Response = strings.TrimSpace(o.Response)
		key := objectionKey(o.Trigger)
		if key == "" || o.Response == "" {
			continue
		}
		if i, ok := index[key]; ok {
			if len(o.Response) > len(out[i].Response) {
				out[i].Response = o.Response
			}
			continue
		}
		index[key] = len(out)
		out = append(out, o)
	}
	return out
}

func objectionKey(trigger string) string {
	return strings.ToLower(strings.Join(strings.Fields(trigger), " "))
}
