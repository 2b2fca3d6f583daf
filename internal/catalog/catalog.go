// Package catalog holds the reference data of the award search: the loyalty
// programs that can be searched and the credit cards whose points transfer to them.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// Version identifies the revision of the built-in transfer partner table.
const Version = "2025.11"

// Catalog is an immutable lookup table of programs and credit cards.
// Accessors return copies, so callers can never mutate the table.
type Catalog struct {
	version  string
	programs []domain.Program
	byID     map[string]domain.Program
	cards    []domain.CreditCard
	cardByID map[string]domain.CreditCard
}

// New builds a catalog. Every card partner must be a registered program.
func New(version string, programs []domain.Program, cards []domain.CreditCard) (*Catalog, error) {
	c := &Catalog{
		version:  version,
		programs: make([]domain.Program, 0, len(programs)),
		byID:     make(map[string]domain.Program, len(programs)),
		cards:    make([]domain.CreditCard, 0, len(cards)),
		cardByID: make(map[string]domain.CreditCard, len(cards)),
	}

	for _, p := range programs {
		p.ID = domain.NormalizeID(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: program with empty id")
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate program %q", p.ID)
		}
		c.byID[p.ID] = p
		c.programs = append(c.programs, p)
	}

	for _, card := range cards {
		card.ID = domain.NormalizeID(card.ID)
		if _, dup := c.cardByID[card.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate credit card %q", card.ID)
		}
		partners := make([]string, 0, len(card.Partners))
		for _, id := range card.Partners {
			id = domain.NormalizeID(id)
			if _, ok := c.byID[id]; !ok {
				return nil, fmt.Errorf("catalog: card %q references unknown program %q", card.ID, id)
			}
			partners = append(partners, id)
		}
		card.Partners = partners
		c.cardByID[card.ID] = card
		c.cards = append(c.cards, card)
	}

	return c, nil
}

var defaultCatalog = mustDefault()

func mustDefault() *Catalog {
	c, err := New(Version, builtinPrograms, builtinCards)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Version returns the catalog revision.
func (c *Catalog) Version() string {
	return c.version
}

// All returns every registered program in registry order.
func (c *Catalog) All() []domain.Program {
	out := make([]domain.Program, len(c.programs))
	copy(out, c.programs)
	return out
}

// Expand returns the transfer partners of a credit card in partner order.
func (c *Catalog) Expand(cardID string) ([]domain.Program, error) {
	card, ok := c.cardByID[domain.NormalizeID(cardID)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownCreditCard, cardID, strings.Join(c.cardIDs(), ", "))
	}

	out := make([]domain.Program, 0, len(card.Partners))
	for _, id := range card.Partners {
		out = append(out, c.byID[id])
	}
	return out, nil
}

// Validate resolves program identifiers, keeping input order and dropping duplicates.
// Every unknown identifier is named in the returned error.
func (c *Catalog) Validate(ids []string) ([]domain.Program, error) {
	out := make([]domain.Program, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	var unknown []string

	for _, raw := range ids {
		id := domain.NormalizeID(raw)
		p, ok := c.byID[id]
		if !ok {
			unknown = append(unknown, raw)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, p)
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProgram, strings.Join(quoteAll(unknown), ", "))
	}
	return out, nil
}

// Resolve returns the program set of a selection.
func (c *Catalog) Resolve(sel domain.ProgramSelection) ([]domain.Program, error) {
	switch sel.Mode {
	case domain.SelectExplicit:
		return c.Validate(sel.Programs)
	case domain.SelectCreditCard:
		return c.Expand(sel.CreditCard)
	case domain.SelectAll:
		return c.All(), nil
	default:
		return nil, domain.WrapInvalidRequest("unknown program selection mode %q", sel.Mode)
	}
}

// Cards returns every credit card in table order.
func (c *Catalog) Cards() []domain.CreditCard {
	out := make([]domain.CreditCard, len(c.cards))
	for i, card := range c.cards {
		out[i] = copyCard(card)
	}
	return out
}

// Card looks up a single credit card.
func (c *Catalog) Card(id string) (domain.CreditCard, bool) {
	card, ok := c.cardByID[domain.NormalizeID(id)]
	if !ok {
		return domain.CreditCard{}, false
	}
	return copyCard(card), true
}

// ProgramName returns the display name of a program, or the id itself when unknown.
func (c *Catalog) ProgramName(id string) string {
	if p, ok := c.byID[domain.NormalizeID(id)]; ok {
		return p.Name
	}
	return id
}

func (c *Catalog) cardIDs() []string {
	ids := make([]string, 0, len(c.cards))
	for _, card := range c.cards {
		ids = append(ids, card.ID)
	}
	sort.Strings(ids)
	return ids
}

func copyCard(card domain.CreditCard) domain.CreditCard {
	partners := make([]string, len(card.Partners))
	copy(partners, card.Partners)
	card.Partners = partners
	return card
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
