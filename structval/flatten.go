package structval

import (
	"fmt"
	"strings"
)

// Entry is one flattened label/value pair for display.
type Entry struct {
	Label string
	Value string
}

// Flatten converts a structured value into an ordered list of label/value
// pairs. Labels are dotted paths for mappings and indexed paths for
// sequences; a null value yields the "Sin datos" placeholder at any depth.
func Flatten(v Value, prefix string) []Entry {
	switch v.Kind {
	case KindNull:
		return []Entry{{Label: "Detalle", Value: "Sin datos"}}

	case KindSequence:
		if len(v.Items) == 0 {
			return []Entry{{Label: "Detalle", Value: "[]"}}
		}
		var entries []Entry
		for i, item := range v.Items {
			p := fmt.Sprintf("[%d]", i)
			if prefix != "" {
				p = prefix + p
			}
			entries = append(entries, Flatten(item, p)...)
		}
		return entries

	case KindMapping:
		var entries []Entry
		for _, m := range v.Members {
			p := m.Key
			if prefix != "" {
				p = prefix + "." + m.Key
			}
			entries = append(entries, Flatten(m.Value, p)...)
		}
		return entries

	default:
		label := prefix
		if label == "" {
			label = "Detalle"
		}
		return []Entry{{Label: label, Value: v.Text}}
	}
}

// SearchKey recursively walks the value looking for any mapping key whose
// name contains keySubstr and whose value's string form contains valSubstr.
// Both comparisons are case-insensitive. Sequences are traversed; scalars
// never match on their own.
func SearchKey(v Value, keySubstr, valSubstr string) bool {
	keySubstr = strings.ToLower(keySubstr)
	valSubstr = strings.ToLower(valSubstr)
	return searchKey(v, keySubstr, valSubstr)
}

func searchKey(v Value, keySubstr, valSubstr string) bool {
	switch v.Kind {
	case KindMapping:
		for _, m := range v.Members {
			if strings.Contains(strings.ToLower(m.Key), keySubstr) &&
				strings.Contains(strings.ToLower(m.Value.String()), valSubstr) {
				return true
			}
			if searchKey(m.Value, keySubstr, valSubstr) {
				return true
			}
		}
	case KindSequence:
		for _, item := range v.Items {
			if searchKey(item, keySubstr, valSubstr) {
				return true
			}
		}
	}
	return false
}
