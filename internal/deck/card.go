package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Suits lists every suit in canonical deck order
var Suits = [...]Suit{Spades, Clubs, Hearts, Diamonds}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Letter returns the single-letter code used on the wire (S, C, H, D)
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "S"
	case Clubs:
		return "C"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the rank as printed on the card face
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// IsFaceCard returns true for J, Q and K
func (r Rank) IsFaceCard() bool {
	return r >= Jack && r <= King
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code returns the compact wire code of a card (e.g., "AS", "10H")
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// Valid reports whether both rank and suit are in range
func (c Card) Valid() bool {
	return c.Rank >= Ace && c.Rank <= King && c.Suit >= Spades && c.Suit <= Diamonds
}

type cardJSON struct {
	Code string `json:"code"`
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// MarshalJSON encodes the card as {"code":"10H","rank":"10","suit":"H"}
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Code: c.Code(), Rank: c.Rank.String(), Suit: c.Suit.Letter()})
}

// UnmarshalJSON accepts either the object form or a bare code string.
// When an object is given, the code wins and rank/suit are ignored.
func (c *Card) UnmarshalJSON(data []byte) error {
	var code string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &code); err != nil {
			return err
		}
	} else {
		var raw cardJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		code = raw.Code
		if code == "" {
			code = raw.Rank + raw.Suit
		}
	}

	parsed, err := ParseCard(code)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a single card code such as "AS", "10h", "Td" or "Q♥"
func ParseCard(code string) (Card, error) {
	cards, err := ParseCards(code)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("expected one card in %q, got %d", code, len(cards))
	}
	return cards[0], nil
}

// ParseCards parses a run of card codes. Codes may be concatenated ("AS10H")
// or separated by spaces or commas ("AS, 10H"). Parsing is case-insensitive
// and accepts "T" as well as "10" for tens.
func ParseCards(s string) ([]Card, error) {
	runes := []rune(strings.ToUpper(s))
	cards := []Card{}

	for i := 0; i < len(runes); {
		switch runes[i] {
		case ' ', ',', '\t':
			i++
			continue
		}

		rank, width, err := parseRank(runes[i:])
		if err != nil {
			return nil, err
		}
		i += width
		if i >= len(runes) {
			return nil, fmt.Errorf("missing suit after rank %s", rank)
		}

		suit, err := parseSuit(runes[i])
		if err != nil {
			return nil, err
		}
		i++

		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(r []rune) (Rank, int, error) {
	if len(r) >= 2 && r[0] == '1' && r[1] == '0' {
		return Ten, 2, nil
	}
	switch r[0] {
	case 'A':
		return Ace, 1, nil
	case 'T':
		return Ten, 1, nil
	case 'J':
		return Jack, 1, nil
	case 'Q':
		return Queen, 1, nil
	case 'K':
		return King, 1, nil
	}
	if r[0] >= '2' && r[0] <= '9' {
		return Rank(r[0] - '0'), 1, nil
	}
	return 0, 0, fmt.Errorf("invalid rank: %c", r[0])
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 'S', '♠':
		return Spades, nil
	case 'C', '♣':
		return Clubs, nil
	case 'H', '♥':
		return Hearts, nil
	case 'D', '♦':
		return Diamonds, nil
	default:
		return 0, fmt.Errorf("invalid suit: %c", r)
	}
}
