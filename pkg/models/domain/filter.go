package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Filter narrows a record set before aggregation. From is inclusive
// and To is exclusive. Region and shipping mode values are compared
// after the same trim and lower-case normalization the validator
// applies to records.
type Filter struct {
	From    *time.Time
	To      *time.Time
	Regions []string
	Modes   []string
}

func (f Filter) IsZero() bool {
	return f.From == nil && f.To == nil && len(f.Regions) == 0 && len(f.Modes) == 0
}

func (f Filter) Match(r CleanRecord) bool {
	if f.From != nil && r.OrderDate.Before(*f.From) {
		return false
	}
	if f.To != nil && !r.OrderDate.Before(*f.To) {
		return false
	}
	if len(f.Regions) > 0 && !containsNormalized(f.Regions, r.Region) {
		return false
	}
	if len(f.Modes) > 0 && !containsNormalized(f.Modes, r.ShippingMode) {
		return false
	}
	return true
}

// Fingerprint returns a stable key for caching results computed under
// this filter. Equal filters produce equal fingerprints regardless of
// the order their values were supplied in.
func (f Filter) Fingerprint() string {
	var b strings.Builder
	if f.From != nil {
		fmt.Fprintf(&b, "from=%s;", f.From.Format(time.RFC3339))
	}
	if f.To != nil {
		fmt.Fprintf(&b, "to=%s;", f.To.Format(time.RFC3339))
	}
	if len(f.Regions) > 0 {
		fmt.Fprintf(&b, "regions=%s;", strings.Join(sortedNormalized(f.Regions), ","))
	}
	if len(f.Modes) > 0 {
		fmt.Fprintf(&b, "modes=%s;", strings.Join(sortedNormalized(f.Modes), ","))
	}
	return b.String()
}

func containsNormalized(values []string, v string) bool {
	for _, c := range values {
		if strings.ToLower(strings.TrimSpace(c)) == v {
			return true
		}
	}
	return false
}

func sortedNormalized(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	sort.Strings(out)
	return out
}
