// Package intel defines the intelligence bundle extracted from counterparty
// messages and the extraction engine that produces it. Bundles are value
// types with set semantics per category; merging is a union and therefore
// commutative, associative, and idempotent, with the empty bundle as
// identity. Re-ordering merges never changes the result.
package intel

import (
	"encoding/json"
	"sort"
)

// StringSet is an unordered set of normalized strings.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given members.
func NewStringSet(members ...string) StringSet {
	s := make(StringSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Add inserts a member. Adding an existing member is a no-op.
func (s StringSet) Add(member string) {
	s[member] = struct{}{}
}

// Has reports membership.
func (s StringSet) Has(member string) bool {
	_, ok := s[member]
	return ok
}

// Values returns the members sorted lexicographically. Order carries no
// meaning; sorting only makes output deterministic.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set containing members of both sets.
func (s StringSet) Union(other StringSet) StringSet {
	out := make(StringSet, len(s)+len(other))
	for m := range s {
		out[m] = struct{}{}
	}
	for m := range other {
		out[m] = struct{}{}
	}
	return out
}

// Equal reports whether both sets have exactly the same members.
func (s StringSet) Equal(other StringSet) bool {
	if len(s) != len(other) {
		return false
	}
	for m := range s {
		if _, ok := other[m]; !ok {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes a JSON array into the set.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var members []string
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	*s = NewStringSet(members...)
	return nil
}

// Bundle is the structured set of indicators extracted for a session.
// The five categories are fixed; each holds normalized, unique strings.
type Bundle struct {
	BankAccounts       StringSet `json:"bankAccounts"`
	UPIIDs             StringSet `json:"upiIds"`
	PhishingLinks      StringSet `json:"phishingLinks"`
	PhoneNumbers       StringSet `json:"phoneNumbers"`
	SuspiciousKeywords StringSet `json:"suspiciousKeywords"`
}

// NewBundle returns an empty bundle with all category sets initialized.
func NewBundle() Bundle {
	return Bundle{
		BankAccounts:       make(StringSet),
		UPIIDs:             make(StringSet),
		PhishingLinks:      make(StringSet),
		PhoneNumbers:       make(StringSet),
		SuspiciousKeywords: make(StringSet),
	}
}

// Merge returns a new bundle holding the per-category union of b and other.
// Neither input is mutated.
func (b Bundle) Merge(other Bundle) Bundle {
	return Bundle{
		BankAccounts:       b.BankAccounts.Union(other.BankAccounts),
		UPIIDs:             b.UPIIDs.Union(other.UPIIDs),
		PhishingLinks:      b.PhishingLinks.Union(other.PhishingLinks),
		PhoneNumbers:       b.PhoneNumbers.Union(other.PhoneNumbers),
		SuspiciousKeywords: b.SuspiciousKeywords.Union(other.SuspiciousKeywords),
	}
}

// Count returns the total number of items across all five categories.
func (b Bundle) Count() int {
	return len(b.BankAccounts) + len(b.UPIIDs) + len(b.PhishingLinks) +
		len(b.PhoneNumbers) + len(b.SuspiciousKeywords)
}

// Empty reports whether the bundle holds no items.
func (b Bundle) Empty() bool {
	return b.Count() == 0
}

// Equal reports per-category set equality.
func (b Bundle) Equal(other Bundle) bool {
	return b.BankAccounts.Equal(other.BankAccounts) &&
		b.UPIIDs.Equal(other.UPIIDs) &&
		b.PhishingLinks.Equal(other.PhishingLinks) &&
		b.PhoneNumbers.Equal(other.PhoneNumbers) &&
		b.SuspiciousKeywords.Equal(other.SuspiciousKeywords)
}

// Clone returns an independent copy of the bundle.
func (b Bundle) Clone() Bundle {
	return NewBundle().Merge(b)
}
