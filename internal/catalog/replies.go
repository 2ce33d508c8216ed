package catalog

import (
	"fmt"
	"slices"
)

// TriggerFreeText marks templates that answer typed input rather than a
// quick action.
const TriggerFreeText = "free-text"

// ViewRights is the client view showing the Australian rights reference.
const ViewRights = "rights"

// QuickAction is a pre-labelled follow-up button.
type QuickAction struct {
	Label     string `json:"label"`
	ActionKey string `json:"action_key"`
}

// ResponseTemplate is one canned assistant reply.
type ResponseTemplate struct {
	Trigger    string        `json:"trigger"`
	Text       string        `json:"text"`
	FollowUps  []QuickAction `json:"follow_ups,omitempty"`
	NavigateTo string        `json:"navigate_to,omitempty"`
}

func (t ResponseTemplate) clone() ResponseTemplate {
	t.FollowUps = slices.Clone(t.FollowUps)
	return t
}

var freeTextReplies = []ResponseTemplate{
	{
		Text: "I understand you're asking about housing benefits. Based on Australian housing rights law and your profile, I can see you may qualify for additional support. Under the Racial Discrimination Act 1975, you're protected from housing discrimination. Let me check your eligibility against current programs.",
		FollowUps: []QuickAction{
			{Label: "Check Eligibility", ActionKey: "check_eligibility"},
			{Label: "Know Your Rights", ActionKey: "housing_rights"},
			{Label: "File New Claim", ActionKey: "file_claim"},
		},
	},
	{
		Text: "I've analyzed 847 policies and found 3 services you're missing. As someone with voting rights under s41 of the Constitution, you're entitled to equal access to government services. The Healthcare Subsidy could save you $1,200/year - this aligns with your economic rights under international treaties Australia has ratified.",
		FollowUps: []QuickAction{
			{Label: "Apply Now", ActionKey: "apply_healthcare"},
			{Label: "View Rights Info", ActionKey: "economic_rights"},
			{Label: "See All Services", ActionKey: "other_services"},
		},
	},
	{
		Text: "Excellent! I've prepared your PR renewal using my knowledge of immigration law and the 7 core UN treaties Australia has ratified. Your case strength is 95% based on similar profiles. I've ensured all constitutional property rights (s51(xxxi)) and non-discrimination protections (s117) are considered.",
		FollowUps: []QuickAction{
			{Label: "Review Documents", ActionKey: "review_docs"},
			{Label: "Legal Context", ActionKey: "immigration_rights"},
			{Label: "Submit Application", ActionKey: "submit_app"},
		},
	},
	{
		Text: "I notice you're asking about workplace issues. Under the Sex Discrimination Act 1984, Racial Discrimination Act 1975, Disability Discrimination Act 1992, and Age Discrimination Act 2004, you have strong protections. I can help you understand your rights and next steps, including connecting you with the Australian Human Rights Commission if needed.",
		FollowUps: []QuickAction{
			{Label: "File AHRC Complaint", ActionKey: "file_ahrc"},
			{Label: "Know Your Rights", ActionKey: "workplace_rights"},
			{Label: "Legal Resources", ActionKey: "legal_help"},
		},
	},
	{
		Text: "Based on the Mabo v Queensland (1992) landmark case and Native Title Act 1993, I can help you understand Indigenous land rights. Australia's rights framework includes 60,000+ years of Aboriginal and Torres Strait Islander customary law. Would you like specific information about native title or cultural heritage protections?",
		FollowUps: []QuickAction{
			{Label: "Native Title Info", ActionKey: "native_title"},
			{Label: "Cultural Rights", ActionKey: "cultural_rights"},
			{Label: "Legal Support", ActionKey: "indigenous_legal"},
		},
	},
	{
		Text: "I can help you understand your constitutional rights! Australia has 5 explicit rights: voting (s41), property on just terms (s51(xxxi)), jury trial (s80), religious freedom (s116), and non-state discrimination (s117). Plus implied rights like political communication. What specific area interests you?",
		FollowUps: []QuickAction{
			{Label: "Constitutional Rights", ActionKey: "constitution_info"},
			{Label: "Implied Rights", ActionKey: "implied_rights"},
			{Label: "Compare Jurisdictions", ActionKey: "jurisdictions"},
		},
	},
	{
		Text: "**Voting Enrollment Help**: As a new Australian citizen, you must enroll and vote in all elections (federal, state, local). You can enroll from age 16 if you've lived at your address 1+ month. I can help you with the enrollment process using your driver's licence, passport, Medicare card, or citizenship certificate.",
		FollowUps: []QuickAction{
			{Label: "Help Me Enroll", ActionKey: "voting_enrollment"},
			{Label: "Voting Requirements", ActionKey: "voting_info"},
			{Label: "AEC Contact Info", ActionKey: "aec_contact"},
		},
	},
}

var quickActionReplies = map[string]ResponseTemplate{
	"prepare_docs": {
		Text: "**Document Preparation**: I'm preparing your PR renewal documents while ensuring your constitutional property rights (s51(xxxi)) and non-discrimination protections (s117) are upheld. I've cross-referenced your case against the 7 UN treaties Australia has ratified. Estimated completion: 5 minutes.",
		FollowUps: []QuickAction{
			{Label: "Legal Protections", ActionKey: "immigration_rights"},
			{Label: "Know Your Rights", ActionKey: "constitutional_rights"},
		},
	},
	"check_eligibility": {
		Text: "**Rights-Based Eligibility Check**: Based on your economic rights under international treaties and anti-discrimination laws, you qualify for: Housing Benefit ($800/month), Healthcare Subsidy ($1,200/year), Education Grant ($2,000). Your access to these is protected under the Sex/Racial/Disability/Age Discrimination Acts.",
		FollowUps: []QuickAction{
			{Label: "Apply for All", ActionKey: "apply_all"},
			{Label: "Economic Rights", ActionKey: "economic_rights"},
			{Label: "View Protections", ActionKey: "discrimination_protection"},
		},
	},
	"apply_healthcare": {
		Text: "**Healthcare Rights Application**: I'm processing your Healthcare Subsidy application ($1,200 annually) while ensuring compliance with your economic rights under UN treaties. If you face any discrimination during processing, I can help you file an AHRC complaint. Your application is protected under federal anti-discrimination law.",
		FollowUps: []QuickAction{
			{Label: "Track Application", ActionKey: "track_health_app"},
			{Label: "Rights During Process", ActionKey: "application_rights"},
		},
	},
	"housing_rights": {
		Text: "**Housing Rights Explained**: Under Australian law, you're protected by the Racial Discrimination Act 1975 and have constitutional non-discrimination rights (s117). You also have implied rights to adequate housing. If you've faced housing discrimination, I can help you file an AHRC complaint or connect you with legal aid.",
		FollowUps: []QuickAction{
			{Label: "File AHRC Complaint", ActionKey: "file_ahrc"},
			{Label: "Legal Aid Resources", ActionKey: "legal_help"},
			{Label: "Housing Programs", ActionKey: "housing_programs"},
		},
	},
	"workplace_rights": {
		Text: "**Workplace Rights Protection**: You're protected by 4 federal anti-discrimination acts: Sex (1984), Racial (1975), Disability (1992), Age (2004). You also have implied constitutional rights to fair treatment. I can help you understand your options including AHRC complaints, Fair Work assistance, or legal aid referrals.",
		FollowUps: []QuickAction{
			{Label: "File AHRC Complaint", ActionKey: "file_ahrc"},
			{Label: "Fair Work Help", ActionKey: "fair_work"},
			{Label: "Legal Resources", ActionKey: "legal_help"},
		},
	},
	"constitutional_rights": {
		Text: "**Your Constitutional Rights**: Australia's Constitution gives you 5 explicit rights: vote (s41), property on just terms (s51(xxxi)), jury trial (s80), religious freedom (s116), and non-state discrimination (s117). Plus implied rights like political communication established by High Court cases.",
		FollowUps: []QuickAction{
			{Label: "View Full Guide", ActionKey: "constitution_info"},
			{Label: "Implied Rights", ActionKey: "implied_rights"},
			{Label: "Compare States", ActionKey: "jurisdictions"},
		},
	},
	"file_ahrc": {
		Text: "**AHRC Complaint Process**: I'm preparing your Australian Human Rights Commission complaint form. The AHRC (established 1986) handles discrimination complaints and provides recommendations. I'll guide you through each step and ensure your rights are protected throughout the process.",
		FollowUps: []QuickAction{
			{Label: "Preview Form", ActionKey: "preview_ahrc"},
			{Label: "Your Rights Info", ActionKey: "ahrc_rights"},
		},
	},
	"voting_enrollment": {
		Text: "**Voting Enrollment Assistance**: I'll help you enroll to vote online - it's the fastest method! You'll need one of these: driver's licence, passport, Medicare card, or citizenship certificate number. Plus you must have lived at your current address for 1+ month. Ready to get started?",
		FollowUps: []QuickAction{
			{Label: "Online Enrollment", ActionKey: "enroll_online"},
			{Label: "Required Documents", ActionKey: "enrollment_docs"},
			{Label: "Call AEC: 13 23 26", ActionKey: "aec_contact"},
		},
		NavigateTo: ViewRights,
	},
	"voting_info": {
		Text: "**Your Voting Obligations**: As an Australian citizen, you must vote in ALL elections: federal, state/territory, and local council. You can enroll from 16 (vote at 18). Compulsory voting ensures everyone has a say in democracy. Need help understanding the preferential voting system?",
		FollowUps: []QuickAction{
			{Label: "How Voting Works", ActionKey: "voting_system"},
			{Label: "Practice Voting", ActionKey: "voting_practice"},
			{Label: "Accessibility Help", ActionKey: "voting_accessibility"},
		},
	},
	"aec_contact": {
		Text: "**Australian Electoral Commission Contact**: Main hotline 13 23 26. For accessibility: TTY 13 36 77 then 13 23 26, Speak & Listen 1300 555 727 then 13 23 26, Internet relay then 13 23 26. Information available in multiple languages. Need help finding your local AEC office?",
		FollowUps: []QuickAction{
			{Label: "Find Local Office", ActionKey: "local_aec"},
			{Label: "Accessibility Services", ActionKey: "voting_accessibility"},
			{Label: "Translated Info", ActionKey: "voting_languages"},
		},
	},
	"constitution_info": {
		Text: "**Constitution Guide**: Opening the full rights guide. It covers the 5 explicit constitutional rights, the implied freedom of political communication and how each one has been tested in the High Court.",
		FollowUps: []QuickAction{
			{Label: "Implied Rights", ActionKey: "implied_rights"},
			{Label: "Compare States", ActionKey: "jurisdictions"},
		},
		NavigateTo: ViewRights,
	},
	"implied_rights": {
		Text: "**Implied Rights**: The High Court has found rights the Constitution does not spell out, such as freedom of political communication (Australian Capital Television v Commonwealth, 1992) and the right to vote in genuinely democratic elections. Opening the rights guide now.",
		FollowUps: []QuickAction{
			{Label: "Constitutional Rights", ActionKey: "constitutional_rights"},
		},
		NavigateTo: ViewRights,
	},
	"jurisdictions": {
		Text: "**Rights by Jurisdiction**: Only the ACT (2004), Victoria (2006) and Queensland (2019) have their own human rights acts. The Commonwealth and the other states rely on the Constitution, statute law and the common law. Opening the comparison now.",
		FollowUps: []QuickAction{
			{Label: "Constitutional Rights", ActionKey: "constitutional_rights"},
		},
		NavigateTo: ViewRights,
	},
}

var defaultReply = ResponseTemplate{
	Text: "I'm using my comprehensive knowledge of Australian rights law to help you. This includes 60,000+ years of Indigenous customary law, constitutional rights, 7 UN treaties, 4 federal anti-discrimination acts, and landmark cases like Mabo (1992).",
	FollowUps: []QuickAction{
		{Label: "Learn More", ActionKey: "constitution_info"},
		{Label: "My Rights", ActionKey: "constitutional_rights"},
	},
}

// FreeTextReplies returns the candidates for replies to typed input.
func FreeTextReplies() []ResponseTemplate {
	out := make([]ResponseTemplate, len(freeTextReplies))
	for i, t := range freeTextReplies {
		t = t.clone()
		t.Trigger = TriggerFreeText
		out[i] = t
	}
	return out
}

// QuickActionReply returns the template registered for actionKey.
func QuickActionReply(actionKey string) (ResponseTemplate, bool) {
	t, ok := quickActionReplies[actionKey]
	if !ok {
		return ResponseTemplate{}, false
	}
	t = t.clone()
	t.Trigger = actionKey
	return t, true
}

// DefaultReply is the fallback for action keys missing from the table.
func DefaultReply() ResponseTemplate {
	t := defaultReply.clone()
	t.Trigger = "default"
	return t
}

// Greeting is the assistant's opening message for a new conversation.
func Greeting(name string) ResponseTemplate {
	if name == "" {
		name = "there"
	}
	return ResponseTemplate{
		Trigger: "greeting",
		Text:    fmt.Sprintf("Hi %s! I noticed your PR renewal deadline is approaching in 30 days. Would you like me to prepare the documents now?", name),
		FollowUps: []QuickAction{
			{Label: "Prepare Docs", ActionKey: "prepare_docs"},
			{Label: "Ask Question", ActionKey: "ask_question"},
			{Label: "View Status", ActionKey: "view_status"},
		},
	}
}

var suggestedQuestions = []string{
	"What benefits am I missing?",
	"Help me enroll to vote",
	"What are my constitutional rights?",
	"Help with housing discrimination",
	"File an AHRC complaint",
	"Check my case status",
	"Appeal a rejection",
}

// SuggestedQuestions are the prompts offered on an empty conversation.
func SuggestedQuestions() []string {
	return slices.Clone(suggestedQuestions)
}
