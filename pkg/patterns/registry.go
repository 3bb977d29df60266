// Package patterns provides a centralized pattern registry for scam
// detection and intelligence extraction. All regex signatures are compiled
// once at package init and shared across the classifier and extractor.
//
// Design principles:
// - COMPILE ONCE: All signatures compiled at init, not per-message
// - DRY: Single source of truth for detection and extraction signatures
// - CATEGORIZED: Signatures organized by category for targeted scans
// - EXTENSIBLE: New signatures slot in without touching caller code
package patterns

import (
	"regexp"
	"sync"
)

// Category represents a signature category
type Category string

const (
	// Intent categories (classifier direct-match signal)
	CategoryAccountThreat     Category = "account_threat"
	CategoryKYCVerification   Category = "kyc_verification"
	CategoryPrizeLottery      Category = "prize_lottery"
	CategoryPhishingAction    Category = "phishing_action"
	CategoryCredentialRequest Category = "credential_request"
	CategoryPaymentRequest    Category = "payment_request"
	CategoryImpersonation     Category = "impersonation"
	CategoryLegalThreat       Category = "legal_threat"

	// Context categories (classifier escalation and link signals)
	CategoryEscalation Category = "escalation"
	CategoryLink       Category = "link"

	// Extraction categories (intelligence extractor)
	CategoryBankAccount Category = "bank_account"
	CategoryUPI         Category = "upi"
	CategoryPhone       Category = "phone"
	CategoryURL         Category = "url"
	CategoryIFSC        Category = "ifsc"
)

// IntentCategories lists the categories whose signatures constitute a
// direct scam-intent match. One hit is enough for the classifier.
func IntentCategories() []Category {
	return []Category{
		CategoryAccountThreat,
		CategoryKYCVerification,
		CategoryPrizeLottery,
		CategoryPhishingAction,
		CategoryCredentialRequest,
		CategoryPaymentRequest,
		CategoryImpersonation,
		CategoryLegalThreat,
	}
}

// Pattern holds a compiled regex with metadata
type Pattern struct {
	Name        string         // Human-readable name for logging
	Regex       *regexp.Regexp // Compiled regex (never nil after init)
	Category    Category       // Signature category
	Severity    int            // Risk weight (0-100), advisory for logging
	Description string         // What this signature detects
}

// Registry holds all compiled signatures, organized by category
type Registry struct {
	mu         sync.RWMutex
	byCategory map[Category][]*Pattern
	all        []*Pattern
}

// global singleton - initialized once at package load
var (
	globalRegistry *Registry
	initOnce       sync.Once
)

// Get returns the global pattern registry (singleton).
// Thread-safe and guaranteed to be initialized.
func Get() *Registry {
	initOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

// newRegistry creates and populates the signature registry
func newRegistry() *Registry {
	r := &Registry{
		byCategory: make(map[Category][]*Pattern),
		all:        make([]*Pattern, 0, 64),
	}

	r.registerIntentSignatures()
	r.registerEscalationSignatures()
	r.registerLinkSignatures()
	r.registerExtractionSignatures()

	return r
}

// register adds a signature to the registry (internal use only)
func (r *Registry) register(name string, pattern string, category Category, severity int, description string) {
	compiled := regexp.MustCompile(pattern)
	p := &Pattern{
		Name:        name,
		Regex:       compiled,
		Category:    category,
		Severity:    severity,
		Description: description,
	}

	r.byCategory[category] = append(r.byCategory[category], p)
	r.all = append(r.all, p)
}

// GetByCategory returns all signatures for a specific category.
// Returns empty slice if category not found (never nil).
func (r *Registry) GetByCategory(cat Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ps, ok := r.byCategory[cat]; ok {
		return ps
	}
	return []*Pattern{}
}

// GetMultipleCategories returns signatures from multiple categories
func (r *Registry) GetMultipleCategories(cats ...Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Pattern
	for _, cat := range cats {
		if ps, ok := r.byCategory[cat]; ok {
			result = append(result, ps...)
		}
	}
	return result
}

// MatchAny checks if text matches any signature in the given categories.
// Returns the first matching signature or nil, optimized for early exit.
func (r *Registry) MatchAny(text string, cats ...Category) *Pattern {
	for _, p := range r.GetMultipleCategories(cats...) {
		if p.Regex.MatchString(text) {
			return p
		}
	}
	return nil
}

// MatchAll returns every signature in the given categories that matches
func (r *Registry) MatchAll(text string, cats ...Category) []*Pattern {
	var matches []*Pattern
	for _, p := range r.GetMultipleCategories(cats...) {
		if p.Regex.MatchString(text) {
			matches = append(matches, p)
		}
	}
	return matches
}

// CountMatches returns the number of signatures in the given categories
// matching the text. Used for escalation scoring, where each distinct
// signature hit contributes one point.
func (r *Registry) CountMatches(text string, cats ...Category) int {
	count := 0
	for _, p := range r.GetMultipleCategories(cats...) {
		if p.Regex.MatchString(text) {
			count++
		}
	}
	return count
}

// TotalPatterns returns the total count of registered signatures
func (r *Registry) TotalPatterns() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// CategoryCount returns the number of signatures in a category
func (r *Registry) CategoryCount(cat Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCategory[cat])
}
