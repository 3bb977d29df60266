package engage

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// templateSet holds the canned reply pools used by the tiered responder.
// Pools can be overridden from a YAML file; the built-in set mirrors the
// persona of a worried, not very tech-savvy person.
type templateSet struct {
	// Openings keyed by the phrase category of the first scam message.
	Openings map[string][]string `yaml:"openings"`
	// Probes fire when the current message contains one of the trigger
	// terms; the reply re-solicits the same kind of indicator.
	Probes []probeTemplate `yaml:"probes"`
	// Stage pools keyed "early", "mid", "late" when no probe matched.
	Stages map[string][]string `yaml:"stages"`
	// Normal replies for conversations never flagged as scams.
	Normal []string `yaml:"normal"`
}

type probeTemplate struct {
	Triggers []string `yaml:"triggers"`
	Replies  []string `yaml:"replies"`
}

const (
	openingAccountBlock = "account_block"
	openingVerification = "verification"
	openingPrize        = "prize"
	openingDefault      = "default"

	stageEarly = "early"
	stageMid   = "mid"
	stageLate  = "late"
)

// loadTemplates reads a YAML override file, falling back to the
// built-in set when the path is empty or unreadable.
func loadTemplates(path string) *templateSet {
	if path == "" {
		return builtinTemplates()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("engage: could not read reply templates %s: %v, using built-in set", path, err)
		return builtinTemplates()
	}
	var set templateSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		log.Printf("engage: could not parse reply templates %s: %v, using built-in set", path, err)
		return builtinTemplates()
	}
	// Partial overrides keep the built-in pools for anything omitted.
	base := builtinTemplates()
	if len(set.Openings) == 0 {
		set.Openings = base.Openings
	}
	if len(set.Probes) == 0 {
		set.Probes = base.Probes
	}
	if len(set.Stages) == 0 {
		set.Stages = base.Stages
	}
	if len(set.Normal) == 0 {
		set.Normal = base.Normal
	}
	return &set
}

func builtinTemplates() *templateSet {
	return &templateSet{
		Openings: map[string][]string{
			openingAccountBlock: {
				"Why will my account be blocked? I didn't do anything wrong.",
				"Blocked? Oh no, what did I do? Please tell me how to fix this.",
				"I don't understand, my account was working fine yesterday. What happened?",
			},
			openingVerification: {
				"How do I verify this is really from the bank?",
				"What details do you need from me exactly? I want to do this properly.",
				"I did my KYC last year at the branch. Why do I need to do it again?",
			},
			openingPrize: {
				"Really? I won? I never win anything. How do I claim it?",
				"That's wonderful news! What do I need to do to get the prize?",
				"Are you sure this is for me? Which contest was this?",
			},
			openingDefault: {
				"I'm not sure I understand. Can you explain more clearly?",
				"Who is this? What is this about?",
				"Sorry, I just saw this message. What do you need from me?",
			},
		},
		Probes: []probeTemplate{
			{
				Triggers: []string{"link", "url", "click", "http", "www"},
				Replies: []string{
					"The link is not opening. Can you send it again?",
					"My phone says the page cannot be displayed. Is there another link?",
					"I clicked but nothing happened. Can you type out the address for me?",
				},
			},
			{
				Triggers: []string{"upi"},
				Replies: []string{
					"It's asking for my UPI ID. What should I enter?",
					"Which UPI ID should I send to? Can you write it again clearly?",
					"I use two UPI apps. Which one should I use and what is your ID?",
				},
			},
			{
				Triggers: []string{"account", "bank"},
				Replies: []string{
					"Which bank is this? I have accounts in multiple banks.",
					"Which account number is this about? I have two accounts.",
					"Can you tell me the account details again? I want to write them down.",
				},
			},
			{
				Triggers: []string{"otp", "password", "pin", "cvv"},
				Replies: []string{
					"I haven't received any OTP yet. Can you send it again?",
					"Is it safe to share that? The bank told me never to share my PIN.",
					"My messages are coming late today. Which number will the OTP come from?",
				},
			},
			{
				Triggers: []string{"call", "phone", "number", "contact"},
				Replies: []string{
					"What number should I call? Can you send it again?",
					"Is there a helpline number I can reach you on if this gets cut?",
					"My network is bad. Can you give me an alternate number?",
				},
			},
			{
				Triggers: []string{"pay", "transfer", "send money", "amount", "fee"},
				Replies: []string{
					"How much do I need to pay exactly? And to which account?",
					"I'm not sure how to do this. Can you guide me step by step?",
					"Should I go to the bank to do the transfer, or can I do it from my phone?",
				},
			},
		},
		Stages: map[string][]string{
			stageEarly: {
				"Okay, I'm a bit worried now. What should I do first?",
				"What happens if I don't do this today?",
				"Please give me a moment, I'm trying to understand this.",
			},
			stageMid: {
				"I'm trying but it's confusing. Can you explain the steps again?",
				"My son usually helps me with these things but he's not home. Can you guide me?",
				"Okay, I'm almost done I think. What comes after this step?",
			},
			stageLate: {
				"I keep getting an error. Is there any other way to do this?",
				"This is taking long, sorry. Are you sure this will fix the problem?",
				"Let me try once more. If it fails, can I visit the branch instead?",
			},
		},
		Normal: []string{
			"Thank you for your message.",
			"Okay, noted. Thanks for letting me know.",
			"Sure, thank you for the update.",
		},
	}
}
