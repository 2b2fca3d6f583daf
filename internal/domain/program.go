package domain

import "strings"

// Program is a loyalty scheme searchable for award availability.
type Program struct {
	// ID is the stable seats.aero source code (e.g., "aeroplan")
	ID string `json:"id"`

	// Name is the display name (e.g., "Air Canada Aeroplan")
	Name string `json:"name"`
}

// CreditCard is a rewards currency whose points transfer to airline programs.
type CreditCard struct {
	// ID is the card identifier (e.g., "capital-one")
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Partners lists the transfer-partner program identifiers
	Partners []string `json:"partners"`
}

// SelectionMode tells how the searched programs are chosen.
type SelectionMode string

// Program selection modes.
const (
	SelectExplicit   SelectionMode = "explicit"
	SelectCreditCard SelectionMode = "credit_card"
	SelectAll        SelectionMode = "all"
)

// ProgramSelection holds the program choice of a search request.
// Exactly one of the three modes is active after validation.
type ProgramSelection struct {
	Mode       SelectionMode `json:"mode"`
	Programs   []string      `json:"programs,omitempty"`
	CreditCard string        `json:"creditCard,omitempty"`
}

// ExplicitPrograms selects the given program identifiers.
func ExplicitPrograms(ids ...string) ProgramSelection {
	return ProgramSelection{Mode: SelectExplicit, Programs: ids}
}

// CreditCardPrograms selects every transfer partner of a credit card.
func CreditCardPrograms(card string) ProgramSelection {
	return ProgramSelection{Mode: SelectCreditCard, CreditCard: card}
}

// AllPrograms selects every registered program.
func AllPrograms() ProgramSelection {
	return ProgramSelection{Mode: SelectAll}
}

// Validate checks that exactly one selection mode is populated.
func (p ProgramSelection) Validate() error {
	switch p.Mode {
	case SelectExplicit:
		if len(p.Programs) == 0 {
			return WrapInvalidRequest("programs must not be empty")
		}
		if p.CreditCard != "" {
			return WrapInvalidRequest("programs and creditCard are mutually exclusive")
		}
	case SelectCreditCard:
		if strings.TrimSpace(p.CreditCard) == "" {
			return WrapInvalidRequest("creditCard is required")
		}
		if len(p.Programs) > 0 {
			return WrapInvalidRequest("programs and creditCard are mutually exclusive")
		}
	case SelectAll:
		if len(p.Programs) > 0 || p.CreditCard != "" {
			return WrapInvalidRequest("all programs excludes programs and creditCard")
		}
	default:
		return WrapInvalidRequest("program selection is required (programs, creditCard or all)")
	}
	return nil
}

// NormalizeID lowercases and trims a program or card identifier.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
