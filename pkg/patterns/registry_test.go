package patterns

import (
	"testing"
)

func TestRegistryInit(t *testing.T) {
	// Get should return a singleton registry
	r1 := Get()
	r2 := Get()

	if r1 != r2 {
		t.Error("Get() should return the same registry instance")
	}
}

func TestRegistryHasSignatures(t *testing.T) {
	r := Get()

	total := r.TotalPatterns()
	if total < 40 {
		t.Errorf("expected at least 40 signatures, got %d", total)
	}

	t.Logf("Registry loaded %d signatures", total)
}

func TestCategorySignatureCounts(t *testing.T) {
	r := Get()

	testCases := []struct {
		category    Category
		minPatterns int
	}{
		{CategoryAccountThreat, 3},
		{CategoryKYCVerification, 3},
		{CategoryPrizeLottery, 4},
		{CategoryPhishingAction, 3},
		{CategoryCredentialRequest, 2},
		{CategoryPaymentRequest, 6},
		{CategoryImpersonation, 3},
		{CategoryLegalThreat, 3},
		{CategoryEscalation, 11},
		{CategoryLink, 3},
		{CategoryBankAccount, 2},
		{CategoryUPI, 2},
		{CategoryPhone, 2},
		{CategoryURL, 3},
		{CategoryIFSC, 1},
	}

	for _, tc := range testCases {
		t.Run(string(tc.category), func(t *testing.T) {
			if got := r.CategoryCount(tc.category); got < tc.minPatterns {
				t.Errorf("category %s: expected at least %d signatures, got %d",
					tc.category, tc.minPatterns, got)
			}
		})
	}
}

func TestMatchAnyIntent(t *testing.T) {
	r := Get()

	testCases := []struct {
		name  string
		text  string
		match bool
	}{
		{"account block threat", "Your account will be blocked today", true},
		{"kyc lure", "KYC update pending, act now", true},
		{"prize hook", "Congratulations! You have won a lottery", true},
		{"otp request", "Please share your OTP to proceed", true},
		{"impersonation", "I am a bank official calling about your card", true},
		{"legal threat", "We will take legal action against you", true},
		{"benign greeting", "Hi, are we still meeting for lunch tomorrow?", false},
		{"benign logistics", "The package arrives on Thursday", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := r.MatchAny(tc.text, IntentCategories()...)
			if (p != nil) != tc.match {
				t.Errorf("MatchAny(%q) matched=%v, want %v", tc.text, p != nil, tc.match)
			}
			if p != nil {
				t.Logf("matched signature %s (%s)", p.Name, p.Category)
			}
		})
	}
}

func TestCountMatchesEscalation(t *testing.T) {
	r := Get()

	// Mentions link, OTP, and PIN: three distinct escalation signatures
	text := "Open the link and enter your OTP and PIN"
	if got := r.CountMatches(text, CategoryEscalation); got != 3 {
		t.Errorf("CountMatches = %d, want 3", got)
	}

	if got := r.CountMatches("see you at dinner", CategoryEscalation); got != 0 {
		t.Errorf("CountMatches on benign text = %d, want 0", got)
	}
}

func TestMatchAll(t *testing.T) {
	r := Get()

	text := "Open the link and enter your OTP and PIN"
	matches := r.MatchAll(text, CategoryEscalation)
	if len(matches) != 3 {
		t.Fatalf("MatchAll returned %d signatures, want 3", len(matches))
	}
	for _, p := range matches {
		if p.Category != CategoryEscalation {
			t.Errorf("signature %s has category %s, want %s", p.Name, p.Category, CategoryEscalation)
		}
	}

	if got := r.MatchAll("see you at dinner", CategoryEscalation); len(got) != 0 {
		t.Errorf("MatchAll on benign text returned %d signatures, want 0", len(got))
	}
}

func TestLinkSignatures(t *testing.T) {
	r := Get()

	testCases := []struct {
		text  string
		match bool
	}{
		{"visit http://secure-bank.xyz/verify", true},
		{"go to www.bank-kyc.in now", true},
		{"open fakebank.co.in/login", true},
		{"no links in this message", false},
	}

	for _, tc := range testCases {
		p := r.MatchAny(tc.text, CategoryLink)
		if (p != nil) != tc.match {
			t.Errorf("link match on %q = %v, want %v", tc.text, p != nil, tc.match)
		}
	}
}

func TestMatchKeywords(t *testing.T) {
	got := MatchKeywords("URGENT: complete KYC verification or account gets blocked")
	want := map[string]bool{"kyc": true, "urgent": true, "blocked": true}

	if len(got) < 3 {
		t.Fatalf("expected at least 3 keywords, got %v", got)
	}
	for kw := range want {
		found := false
		for _, g := range got {
			if g == kw {
				found = true
			}
		}
		if !found {
			t.Errorf("expected keyword %q in %v", kw, got)
		}
	}
}

func TestMatchKeywordsDeduplicates(t *testing.T) {
	got := MatchKeywords("otp otp otp")
	count := 0
	for _, g := range got {
		if g == "otp" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("keyword recorded %d times, want once", count)
	}
}
