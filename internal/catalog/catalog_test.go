package catalog

import (
	"errors"
	"testing"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 8 {
		t.Fatalf("expected 8 products, got %d", c.Len())
	}

	list := c.List()
	if list[0].ID != "p1" || list[7].ID != "p8" {
		t.Fatalf("unexpected order: %s .. %s", list[0].ID, list[7].ID)
	}

	p, ok := c.Lookup("p2")
	if !ok || p.Name != "HydroLift Smart Bath Chair" {
		t.Fatalf("unexpected lookup result: %+v %v", p, ok)
	}
	if p.SpecMap()["Lift Mechanism"] != "Hydraulic" {
		t.Fatalf("unexpected specs: %+v", p.Specs)
	}
}

func TestCatalogGetUnknown(t *testing.T) {
	_, err := Default().Get("p99")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogListIsCopy(t *testing.T) {
	c := Default()
	list := c.List()
	list[0].Name = "changed"
	if p, _ := c.Lookup("p1"); p.Name == "changed" {
		t.Fatalf("List must not expose internal storage")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]domain.Product{{ID: "a"}, {ID: "a"}})
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}

	_, err = New([]domain.Product{{ID: "a", Specs: []domain.Spec{{Key: "k"}, {Key: "k"}}}})
	if err == nil {
		t.Fatalf("expected duplicate spec key error")
	}
}

func TestInquiryTemplates(t *testing.T) {
	got := ProductInquiry("EzAccess Modular Ramp", "p8")
	if got != "I'm interested in the EzAccess Modular Ramp (ID: p8). Can you tell me more?" {
		t.Fatalf("unexpected product inquiry: %q", got)
	}
	if TopicInquiry(QuickTopics[1]) != "I'm looking for solutions for Bathroom Safety" {
		t.Fatalf("unexpected topic inquiry: %q", TopicInquiry(QuickTopics[1]))
	}
}
