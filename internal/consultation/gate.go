package consultation

import (
	"context"

	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/policy"
)

// GatePolicy decides whether a form step may be left. Contact rules also apply
// at confirm so a submission is checked end to end.
const GatePolicy = `
package consultation_gate

import rego.v1

checks_contact if input.step in {"contact", "confirm"}

checks_condition if input.step in {"condition", "confirm"}

reasons contains "name is required" if {
	checks_contact
	trim_space(input.form.name) == ""
}

reasons contains "phone is required" if {
	checks_contact
	trim_space(input.form.phone) == ""
}

reasons contains "phone number is not valid" if {
	checks_contact
	trim_space(input.form.phone) != ""
	not regex.match(` + "`^\\+?[0-9 ().-]{7,20}$`" + `, trim_space(input.form.phone))
}

reasons contains "province is not recognised" if {
	checks_contact
	input.form.province != ""
	not input.form.province in input.provinces
}

reasons contains "mobility level is not recognised" if {
	checks_condition
	not input.form.mobility_level in input.mobility_levels
}

decision := {"allow": count(reasons) == 0, "reasons": sort(reasons)}
`

// Gate evaluates step requirements.
type Gate interface {
	Check(ctx context.Context, step domain.ConsultationStep, form domain.ConsultationForm) (policy.Decision, error)
}

// PolicyGate is a Gate backed by the OPA engine.
type PolicyGate struct {
	engine *policy.Engine
}

// NewPolicyGate compiles GatePolicy.
func NewPolicyGate(ctx context.Context) (*PolicyGate, error) {
	engine, err := policy.NewEngine(ctx, "data.consultation_gate.decision", "consultation_gate.rego", GatePolicy)
	if err != nil {
		return nil, err
	}
	return &PolicyGate{engine: engine}, nil
}

func (g *PolicyGate) Check(ctx context.Context, step domain.ConsultationStep, form domain.ConsultationForm) (policy.Decision, error) {
	provinces := make([]interface{}, 0, len(domain.Provinces))
	for _, p := range domain.Provinces {
		provinces = append(provinces, p)
	}
	mobility := make([]interface{}, 0, len(domain.MobilityLevels))
	for _, m := range domain.MobilityLevels {
		mobility = append(mobility, string(m))
	}
	input := map[string]interface{}{
		"step": string(step),
		"form": map[string]interface{}{
			"name":           form.Name,
			"phone":          form.Phone,
			"province":       form.Province,
			"mobility_level": string(form.MobilityLevel),
			"condition":      form.Condition,
			"details":        form.Details,
		},
		"provinces":       provinces,
		"mobility_levels": mobility,
	}
	return g.engine.Evaluate(ctx, input)
}
