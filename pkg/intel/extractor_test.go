package intel

import (
	"testing"
)

func TestExtractUPI(t *testing.T) {
	e := NewExtractor()

	b := e.Extract("Send payment to upi id scammer@paytm now")

	if !b.UPIIDs.Has("scammer@paytm") {
		t.Errorf("upiIds = %v, want scammer@paytm", b.UPIIDs.Values())
	}
	if !b.SuspiciousKeywords.Has("upi") {
		t.Errorf("keywords = %v, want upi", b.SuspiciousKeywords.Values())
	}
}

func TestExtractUPINormalization(t *testing.T) {
	e := NewExtractor()

	testCases := []struct {
		name string
		text string
		want string
	}{
		{"lowercased", "pay to SCAMMER@Paytm", "scammer@paytm"},
		{"labeled", "UPI: fraudster@okaxis today", "fraudster@okaxis"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := e.Extract(tc.text)
			if !b.UPIIDs.Has(tc.want) {
				t.Errorf("upiIds = %v, want %q", b.UPIIDs.Values(), tc.want)
			}
		})
	}
}

func TestExtractUPIRejectsShortTokens(t *testing.T) {
	e := NewExtractor()

	// "a@b" is 3 chars: below the minimum length for a plausible UPI id
	b := e.Extract("ping a@b ok")
	if b.UPIIDs.Has("a@b") {
		t.Errorf("short token accepted: %v", b.UPIIDs.Values())
	}
}

func TestExtractPhoneNormalization(t *testing.T) {
	e := NewExtractor()

	testCases := []struct {
		name string
		text string
		want string
	}{
		{"bare ten digit", "call 9876543210 immediately", "+919876543210"},
		{"leading zero", "call 09876543210 immediately", "+919876543210"},
		{"formatted groups", "call 987-654-3210 now", "+919876543210"},
		{"already prefixed", "call+919876543210 for help", "+919876543210"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := e.Extract(tc.text)
			if !b.PhoneNumbers.Has(tc.want) {
				t.Errorf("phoneNumbers = %v, want %q", b.PhoneNumbers.Values(), tc.want)
			}
		})
	}
}

func TestExtractBankAccounts(t *testing.T) {
	e := NewExtractor()

	b := e.Extract("Transfer to account number: 123456789012 before 5pm")
	if !b.BankAccounts.Has("123456789012") {
		t.Errorf("bankAccounts = %v, want 123456789012", b.BankAccounts.Values())
	}

	// 8 digits is below the account range
	short := e.Extract("code 12345678 expires")
	if len(short.BankAccounts) != 0 {
		t.Errorf("short digit run accepted: %v", short.BankAccounts.Values())
	}
}

func TestExtractLinks(t *testing.T) {
	e := NewExtractor()

	testCases := []struct {
		name string
		text string
		want string
	}{
		{"scheme preserved", "open https://secure-verify.xyz/kyc", "https://secure-verify.xyz/kyc"},
		{"www prefixed", "visit www.bank-update.in fast", "http://www.bank-update.in"},
		{"bare domain", "go to fakebank.co.in/login now", "http://fakebank.co.in/login"},
		{"lowercased", "open HTTP://PHISH.IN/x", "http://phish.in/x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := e.Extract(tc.text)
			if !b.PhishingLinks.Has(tc.want) {
				t.Errorf("phishingLinks = %v, want %q", b.PhishingLinks.Values(), tc.want)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	e := NewExtractor()

	b := e.Extract("URGENT: your KYC is pending, share OTP to verify")
	for _, kw := range []string{"urgent", "kyc", "otp", "verify"} {
		if !b.SuspiciousKeywords.Has(kw) {
			t.Errorf("keywords = %v, missing %q", b.SuspiciousKeywords.Values(), kw)
		}
	}
}

func TestExtractEmptyAndBenignText(t *testing.T) {
	e := NewExtractor()

	if !e.Extract("").Empty() {
		t.Error("empty text produced intelligence")
	}
	if !e.Extract("see you at six for dinner").Empty() {
		t.Error("benign text produced intelligence")
	}
}

func TestExtractIdempotentUnderMerge(t *testing.T) {
	e := NewExtractor()
	text := "Pay 9876543210 via scammer@paytm at http://phish.in, urgent KYC"

	once := e.Extract(text)
	twice := once.Merge(e.Extract(text))

	if !once.Equal(twice) {
		t.Error("extracting twice and merging differs from extracting once")
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := NewExtractor()
	text := "account 123456789012, call 9876543210, visit www.phish.in"

	a := e.Extract(text)
	b := e.Extract(text)
	if !a.Equal(b) {
		t.Error("extraction is not deterministic")
	}
}
