package conversation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

const systemInstructionTemplate = `
You are the "AliTaram Specialist", a top-tier clinical rehabilitation consultant for AliTaram.
Your goal is to triage customer needs and guide them to a consultation booking.
You are professional, empathetic, and highly knowledgeable about mobility safety.

YOUR KNOWLEDGE BASE:
%s

BEHAVIOR GUIDELINES:
1. **Identify the Condition:** If the user says "my mom fell", ask about her current mobility status or where she fell.
2. **Recommend Safely:** If a user describes high-risk scenarios (stairs, heavy bathroom transfer), suggest a consultation immediately.
3. **Format Recommendations:** When you find a product that fits, ALWAYS output it as: [RECOMMEND: PRODUCT_ID] followed by a short reason why.
4. **Drive to Consultation:** After answering 2-3 questions, politely suggest: "To ensure this is the perfect fit for your home, I can have a specialist call you. Shall I open the booking form?"
5. **Language:** Communicate clearly in English.

Example Interaction:
User: "I need something for the bathroom."
You: "I can help with that. Is the user able to step into a tub, or do they need a transfer bench to slide in safely?"
User: "They can't lift their legs well."
You: "Understood. For safety, a transfer system is best. I recommend the HydroLift. [RECOMMEND: p2] 
This allows seated entry. Would you like to book a quick video consult to check your tub dimensions?"
`

type knowledgeEntry struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Desc     string      `json:"desc"`
	Category string      `json:"category"`
	Specs    orderedSpec `json:"specs"`
}

// orderedSpec renders a spec table as a JSON object in declaration order.
type orderedSpec []domain.Spec

func (s orderedSpec) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, kv.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, kv.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}

// KnowledgeBase serializes the catalogue into the compact form embedded in the prompt.
func KnowledgeBase(products []domain.Product) (string, error) {
	entries := make([]knowledgeEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, knowledgeEntry{
			ID:       p.ID,
			Name:     p.Name,
			Desc:     p.ShortDescription,
			Category: p.Category,
			Specs:    orderedSpec(p.Specs),
		})
	}
	// keep "<10ms" readable for the model
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return "", fmt.Errorf("failed to marshal knowledge base: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// SystemInstruction builds the assistant persona prompt for a catalogue.
func SystemInstruction(products []domain.Product) (string, error) {
	kb, err := KnowledgeBase(products)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(systemInstructionTemplate, kb), nil
}
