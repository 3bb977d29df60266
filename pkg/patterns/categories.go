package patterns

// Signature definitions, grouped by registration function. Severity is a
// relative weight used for logging which signal tripped; the classifier
// itself is binary and one intent hit is sufficient.

// registerIntentSignatures adds phrase-level scam intent signatures.
// These are deliberately broad: the honeypot favors false engagements
// over missed ones.
func (r *Registry) registerIntentSignatures() {
	// Banking / financial urgency
	r.register("account_blocked", `(?i)\baccount\s+(will\s+be\s+)?(blocked|suspended|closed|deactivated)`, CategoryAccountThreat, 90, "Account suspension threat")
	r.register("immediate_action", `(?i)\bimmediate(ly)?\s+action`, CategoryAccountThreat, 60, "Pressure for immediate action")
	r.register("urgent_required", `(?i)\burgent(ly)?\s+(required|needed|update)`, CategoryAccountThreat, 60, "Urgency pressure")

	// KYC / verification lures
	r.register("kyc_update", `(?i)\bkyc\s+(update|verification|pending|expired)`, CategoryKYCVerification, 85, "KYC update lure")
	r.register("verify_identity", `(?i)\bverify\s+(your\s+)?(account|identity|details)`, CategoryKYCVerification, 80, "Identity verification lure")
	r.register("update_details", `(?i)\bupdate\s+(your\s+)?(kyc|pan|details)`, CategoryKYCVerification, 75, "Detail update lure")

	// Prize / lottery
	r.register("congrats_won", `(?i)\bcongratulations.*won`, CategoryPrizeLottery, 85, "Congratulations-you-won hook")
	r.register("lottery_winner", `(?i)\blottery\s+winner`, CategoryPrizeLottery, 85, "Lottery winner hook")
	r.register("prize_worth", `(?i)\bprize\s+(of|worth)`, CategoryPrizeLottery, 80, "Prize value hook")
	r.register("claim_prize", `(?i)\bclaim\s+(your\s+)?(prize|reward|amount)`, CategoryPrizeLottery, 80, "Prize claim instruction")

	// Phishing actions
	r.register("click_here", `(?i)\bclick\s+(here|link|below)`, CategoryPhishingAction, 75, "Click instruction")
	r.register("download_app", `(?i)\bdownload\s+(app|application)`, CategoryPhishingAction, 75, "App download instruction")
	r.register("install_app", `(?i)\binstall\s+(app|application)`, CategoryPhishingAction, 75, "App install instruction")

	// Credential solicitation
	r.register("enter_credentials", `(?i)\benter\s+(your\s+)?(otp|password|pin)`, CategoryCredentialRequest, 95, "OTP/password entry request")
	r.register("share_credentials", `(?i)\bshare\s+(your\s+)?(otp|password|pin)`, CategoryCredentialRequest, 95, "OTP/password sharing request")

	// Payment / transfer requests
	r.register("send_money", `(?i)\bsend\s+(money|payment|amount)`, CategoryPaymentRequest, 85, "Money transfer request")
	r.register("transfer_funds", `(?i)\btransfer\s+(money|amount|funds)`, CategoryPaymentRequest, 85, "Funds transfer request")
	r.register("pay_now", `(?i)\bpay\s+(immediately|now|urgent)`, CategoryPaymentRequest, 80, "Immediate payment demand")
	r.register("upi_id_mention", `(?i)\bupi\s+id`, CategoryPaymentRequest, 80, "UPI id solicitation")
	r.register("bank_account_number", `(?i)\bbank\s+account\s+number`, CategoryPaymentRequest, 80, "Bank account solicitation")
	r.register("ifsc_mention", `(?i)\bifsc\s+code`, CategoryPaymentRequest, 75, "IFSC code solicitation")

	// Impersonation
	r.register("bank_official", `(?i)\bbank\s+(official|representative|executive)`, CategoryImpersonation, 70, "Bank staff impersonation")
	r.register("customer_care", `(?i)\bcustomer\s+(care|support|service)`, CategoryImpersonation, 60, "Customer care impersonation")
	r.register("government_official", `(?i)\bgovernment\s+(official|department)`, CategoryImpersonation, 70, "Government impersonation")

	// Legal threats
	r.register("legal_action", `(?i)\blegal\s+action`, CategoryLegalThreat, 75, "Legal action threat")
	r.register("police_case", `(?i)\bpolice\s+(complaint|case)`, CategoryLegalThreat, 75, "Police threat")
	r.register("penalty_fee", `(?i)\bpenalty\s+(charges|fee)`, CategoryLegalThreat, 70, "Penalty threat")
}

// registerEscalationSignatures adds the risk terms summed across a
// counterparty's message history. Each signature hit in each message
// contributes one point toward the escalation threshold.
func (r *Registry) registerEscalationSignatures() {
	r.register("esc_link", `(?i)\blink\b`, CategoryEscalation, 40, "Link mention")
	r.register("esc_url", `(?i)\burl\b`, CategoryEscalation, 40, "URL mention")
	r.register("esc_http", `(?i)http[s]?://`, CategoryEscalation, 50, "Raw URL")
	r.register("esc_www", `(?i)\bwww\.`, CategoryEscalation, 50, "www-prefixed host")
	r.register("esc_download", `(?i)\bdownload\b`, CategoryEscalation, 40, "Download mention")
	r.register("esc_install", `(?i)\binstall\b`, CategoryEscalation, 40, "Install mention")
	r.register("esc_otp", `(?i)\botp\b`, CategoryEscalation, 60, "OTP mention")
	r.register("esc_password", `(?i)\bpassword\b`, CategoryEscalation, 60, "Password mention")
	r.register("esc_pin", `(?i)\bpin\b`, CategoryEscalation, 60, "PIN mention")
	r.register("esc_account_number", `(?i)\baccount\s+number\b`, CategoryEscalation, 55, "Account number mention")
	r.register("esc_upi", `(?i)\bupi\b`, CategoryEscalation, 55, "UPI mention")
}

// registerLinkSignatures adds URL-shaped token detection used by the
// classifier's suspicious-link signal.
func (r *Registry) registerLinkSignatures() {
	r.register("link_scheme", `(?i)http[s]?://[^\s]+`, CategoryLink, 70, "Scheme-prefixed URL")
	r.register("link_www", `(?i)www\.[^\s]+`, CategoryLink, 65, "www-prefixed host")
	r.register("link_bare_domain", `(?i)\b[a-z0-9-]+\.(com|in|net|org|co\.in)[^\s]*`, CategoryLink, 55, "Bare domain plus TLD")
}

// registerExtractionSignatures adds the structural signatures the
// intelligence extractor runs against raw message text. Signatures with a
// capture group yield the group; the rest yield the whole match.
func (r *Registry) registerExtractionSignatures() {
	// Bank accounts: 9-18 digit runs, bare or behind an "account number" label
	r.register("bank_digits", `\b\d{9,18}\b`, CategoryBankAccount, 80, "9-18 digit account run")
	r.register("bank_labeled", `(?i)\baccount\s*(?:number|no\.?|#)?\s*:?\s*(\d{9,18})\b`, CategoryBankAccount, 90, "Labeled account number")

	// UPI identifiers: local-part@handle
	r.register("upi_token", `\b[\w.-]+@\w+\b`, CategoryUPI, 85, "UPI-shaped token")
	r.register("upi_labeled", `(?i)\bupi\s*(?:id)?\s*:?\s*([\w.-]+@\w+)\b`, CategoryUPI, 90, "Labeled UPI id")

	// Phone numbers: Indian mobiles and generically formatted digit groups
	r.register("phone_indian", `\b(?:\+91|0)?[6-9]\d{9}\b`, CategoryPhone, 85, "Indian mobile number")
	r.register("phone_formatted", `\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`, CategoryPhone, 60, "Formatted digit groups")

	// URLs for phishing-link extraction (wider TLD set than the link signal)
	r.register("url_scheme", `(?i)http[s]?://[A-Za-z0-9$\-_@.&+!*(),%/=?#~:;]+`, CategoryURL, 85, "Scheme-prefixed URL")
	r.register("url_www", `(?i)www\.[A-Za-z0-9$\-_@.&+!*(),%/=?#~:;]+`, CategoryURL, 80, "www-prefixed host")
	r.register("url_bare", `(?i)\b[a-z0-9-]+\.(?:com|in|net|org|co\.in|xyz|info|biz)(?:/[^\s]*)?\b`, CategoryURL, 60, "Bare domain plus TLD")

	// IFSC codes: corroborates payment-detail solicitation
	r.register("ifsc_code", `\b[A-Z]{4}0[A-Z0-9]{6}\b`, CategoryIFSC, 70, "IFSC bank code")
}
