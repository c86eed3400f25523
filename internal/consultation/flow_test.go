package consultation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teconavi/alitaramdemo2/internal/catalog"
	"github.com/teconavi/alitaramdemo2/internal/domain"
)

func strPtr(s string) *string { return &s }

func newTestGate(t *testing.T) *PolicyGate {
	t.Helper()
	g, err := NewPolicyGate(context.Background())
	require.NoError(t, err)
	return g
}

func TestFlowHappyPath(t *testing.T) {
	ctx := context.Background()
	product, _ := catalog.Default().Lookup("p2")
	f := NewFlow(newTestGate(t), &product)

	v := f.View()
	assert.Equal(t, domain.StepContact, v.Step)
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, domain.MobilityIndependent, v.Form.MobilityLevel)
	assert.Equal(t, "p2", v.Form.OriginProductID)

	_, err := f.Update(domain.ConsultationPatch{
		Name:     strPtr("Sara Ahmadi"),
		Phone:    strPtr("+1 (416) 555-0199"),
		Province: strPtr(domain.ProvinceOntario),
	})
	require.NoError(t, err)

	v, err = f.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepCondition, v.Step)

	wheelchair := domain.MobilityWheelchair
	_, err = f.Update(domain.ConsultationPatch{MobilityLevel: &wheelchair, Condition: strPtr("Hip replacement, 3 weeks ago")})
	require.NoError(t, err)

	v, err = f.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepContext, v.Step)

	_, err = f.Review()
	assert.ErrorIs(t, err, domain.ErrNotAtReview)

	v, err = f.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirm, v.Step)

	review, err := f.Review()
	require.NoError(t, err)
	require.NotNil(t, review.Product)
	assert.Equal(t, "HydroLift Smart Bath Chair", review.Product.Name)
	assert.Equal(t, "Sara Ahmadi", review.Form.Name)

	_, err = f.Next(ctx)
	assert.ErrorIs(t, err, domain.ErrNoNextStep)

	receipt, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.Reference, "consult_"))
	assert.Equal(t, domain.MobilityWheelchair, receipt.Form.MobilityLevel)
	assert.False(t, receipt.SubmittedAt.IsZero())

	assert.Equal(t, domain.StepSubmitted, f.View().Step)
	_, err = f.Submit(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAtReview)
	_, err = f.Update(domain.ConsultationPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNoConsultation)
}

func TestFlowContactStepBlocked(t *testing.T) {
	f := NewFlow(newTestGate(t), nil)

	v, err := f.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStepBlocked)
	assert.Equal(t, domain.StepContact, v.Step)

	var blocked *BlockedError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, []string{"name is required", "phone is required"}, blocked.Reasons)

	_, err = f.Update(domain.ConsultationPatch{Name: strPtr("A"), Phone: strPtr("call me"), Province: strPtr("NY")})
	require.NoError(t, err)
	_, err = f.Next(context.Background())
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, []string{"phone number is not valid", "province is not recognised"}, blocked.Reasons)
}

func TestFlowConditionRejectsUnknownMobility(t *testing.T) {
	ctx := context.Background()
	f := NewFlow(newTestGate(t), nil)
	_, err := f.Update(domain.ConsultationPatch{Name: strPtr("A"), Phone: strPtr("6045550100")})
	require.NoError(t, err)
	_, err = f.Next(ctx)
	require.NoError(t, err)

	flying := domain.MobilityLevel("Flying")
	_, err = f.Update(domain.ConsultationPatch{MobilityLevel: &flying})
	require.NoError(t, err)

	_, err = f.Next(ctx)
	assert.ErrorIs(t, err, domain.ErrStepBlocked)
}

func TestFlowBack(t *testing.T) {
	f := NewFlow(allowAll{}, nil)

	_, err := f.Back()
	assert.ErrorIs(t, err, domain.ErrNoPreviousStep)

	_, err = f.Next(context.Background())
	require.NoError(t, err)
	_, err = f.Update(domain.ConsultationPatch{Condition: strPtr("stroke")})
	require.NoError(t, err)

	v, err := f.Back()
	require.NoError(t, err)
	assert.Equal(t, domain.StepContact, v.Step)
	assert.Equal(t, "stroke", v.Form.Condition)
}

func TestFlowGateError(t *testing.T) {
	f := NewFlow(failingGate{}, nil)

	_, err := f.Next(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrStepBlocked))
	assert.Equal(t, domain.StepContact, f.View().Step)
}
