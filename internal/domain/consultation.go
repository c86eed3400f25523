package domain

import "time"

// ConsultationForm is the draft collected by the consultation flow.
type ConsultationForm struct {
	Name            string        `json:"name"`
	Phone           string        `json:"phone"`
	Province        string        `json:"province"`
	MobilityLevel   MobilityLevel `json:"mobility_level"`
	Condition       string        `json:"condition"`
	Details         string        `json:"details"`
	OriginProductID string        `json:"origin_product_id,omitempty"`
}

// ConsultationPatch carries a partial form update. Nil fields are left untouched.
type ConsultationPatch struct {
	Name          *string        `json:"name,omitempty"`
	Phone         *string        `json:"phone,omitempty"`
	Province      *string        `json:"province,omitempty"`
	MobilityLevel *MobilityLevel `json:"mobility_level,omitempty"`
	Condition     *string        `json:"condition,omitempty"`
	Details       *string        `json:"details,omitempty"`
}

// ConsultationView is the externally visible state of an open consultation.
type ConsultationView struct {
	Step    ConsultationStep `json:"step"`
	Index   int              `json:"index"`
	Form    ConsultationForm `json:"form"`
	Product *Product         `json:"product,omitempty"`
}

// Receipt is returned once a consultation request has been submitted.
type Receipt struct {
	Reference   string           `json:"reference"`
	Form        ConsultationForm `json:"form"`
	Product     *Product         `json:"product,omitempty"`
	SubmittedAt time.Time        `json:"submitted_at"`
}
