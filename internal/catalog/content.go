package catalog

import "fmt"

// UIText is the static string table rendered by the site.
var UIText = map[string]string{
	"heroTitle":         "AliTaram.",
	"heroSubtitle":      "Advanced rehabilitation solutions tailored to your recovery journey. Excellence in mobility care.",
	"bookConsult":       "Book Consultation",
	"browseProducts":    "Browse Products",
	"consultRequired":   "Consultation Required",
	"viewDetails":       "View Details",
	"chatWithAgent":     "Chat with Specialist",
	"categories":        "Categories",
	"searchPlaceholder": "Describe your needs...",
	"startChat":         "Start Chat",
	"chatPlaceholder":   "Type your message...",
	"consultationTitle": "Request Consultation",
	"stepContact":       "Contact",
	"stepCondition":     "Condition",
	"stepContext":       "Context",
	"stepConfirm":       "Confirm",
	"submit":            "Submit Request",
	"next":              "Next",
	"back":              "Back",
	"privacyConsent":    "By chatting you consent to us storing your messages to assist with recommendations.",
	"footerText":        "© 2024 AliTaram. Designed & Developed by Teco.",
}

// QuickTopics are the one-click conversation starters shown under the hero search.
var QuickTopics = []string{"Hip Surgery Recovery", "Bathroom Safety", "Wheelchair Ramps"}

// IsQuickTopic reports whether topic is one of QuickTopics.
func IsQuickTopic(topic string) bool {
	for _, t := range QuickTopics {
		if t == topic {
			return true
		}
	}
	return false
}

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Pillar struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// About is the content of the "about us" view.
type About struct {
	Mission  string   `json:"mission"`
	WhoWeAre []string `json:"who_we_are"`
	Pillars  []Pillar `json:"pillars"`
	Stats    []Stat   `json:"stats"`
}

var AboutContent = About{
	Mission: "Restoring Independence for Everyone.",
	WhoWeAre: []string{
		"AliTaram is the premier intelligent rehabilitation provider in the Middle East. We bridge the critical gap between clinical assessment and home equipment delivery using AI-driven triage.",
		"Founded by Teco, we believe that finding the right mobility aid shouldn't be complicated. We empower families with knowledge and medical-grade solutions.",
	},
	Pillars: []Pillar{
		{Title: "Innovation First", Body: "We utilize advanced data analytics to match patients with the perfect equipment, reducing return rates and increasing long-term satisfaction by over 90%."},
		{Title: "Clinical Validation", Body: "Every product in our catalogue is vetted by licensed Occupational Therapists to ensure it meets strict safety and durability standards."},
	},
	Stats: []Stat{
		{Label: "Families Helped", Value: "15k+"},
		{Label: "Smart Support", Value: "24/7"},
		{Label: "Wait Time Reduced", Value: "60%"},
		{Label: "Satisfaction", Value: "98%"},
	},
}

// ProductInquiry is the chat seed used by a product's "chat about this" action.
func ProductInquiry(name, id string) string {
	return fmt.Sprintf("I'm interested in the %s (ID: %s). Can you tell me more?", name, id)
}

// TopicInquiry is the chat seed used by a quick topic.
func TopicInquiry(topic string) string {
	return fmt.Sprintf("I'm looking for solutions for %s", topic)
}
