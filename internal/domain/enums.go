// Package domain defines the core domain models for the site backend.
package domain

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatStatus represents the state of a session's conversation.
type ChatStatus string

const (
	ChatStatusIdle             ChatStatus = "idle"
	ChatStatusAwaitingResponse ChatStatus = "awaiting-response"
)

// ConsultationStep is one stage of the consultation request form.
type ConsultationStep string

const (
	StepContact   ConsultationStep = "contact"
	StepCondition ConsultationStep = "condition"
	StepContext   ConsultationStep = "context"
	StepConfirm   ConsultationStep = "confirm"
	StepSubmitted ConsultationStep = "submitted"
)

// ConsultationSteps lists the form steps in presentation order.
var ConsultationSteps = []ConsultationStep{StepContact, StepCondition, StepContext, StepConfirm}

// Index returns the position of the step in ConsultationSteps, or -1.
func (s ConsultationStep) Index() int {
	for i, step := range ConsultationSteps {
		if step == s {
			return i
		}
	}
	return -1
}

// Province codes accepted by the contact step.
const (
	ProvinceOntario         = "ON"
	ProvinceBritishColumbia = "BC"
	ProvinceQuebec          = "QC"
	ProvinceAlberta         = "AB"
	ProvinceOther           = "Other"
)

// Provinces lists the selectable regions.
var Provinces = []string{ProvinceOntario, ProvinceBritishColumbia, ProvinceQuebec, ProvinceAlberta, ProvinceOther}

// MobilityLevel describes how the patient currently moves around.
type MobilityLevel string

const (
	MobilityIndependent MobilityLevel = "Independent"
	MobilityCane        MobilityLevel = "Uses Cane"
	MobilityWalker      MobilityLevel = "Walker"
	MobilityWheelchair  MobilityLevel = "Wheelchair"
	MobilityBedbound    MobilityLevel = "Bedbound"
)

// MobilityLevels lists the selectable mobility levels.
var MobilityLevels = []MobilityLevel{MobilityIndependent, MobilityCane, MobilityWalker, MobilityWheelchair, MobilityBedbound}
