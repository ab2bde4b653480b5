package entities

import (
	"encoding/json"
	"fmt"
)

// CardType is a closed enumeration of patron categories. It is stored as a
// single letter ("S"/"T") and rendered as "Student"/"Teacher" on the wire.
type CardType string

const (
	CardTypeStudent CardType = "S"
	CardTypeTeacher CardType = "T"
)

// ParseCardType accepts both the long wire form and the stored letter form.
func ParseCardType(s string) (CardType, error) {
	switch s {
	case "Student", "S":
		return CardTypeStudent, nil
	case "Teacher", "T":
		return CardTypeTeacher, nil
	default:
		return "", fmt.Errorf("unknown card type %q", s)
	}
}

func (t CardType) Valid() bool {
	return t == CardTypeStudent || t == CardTypeTeacher
}

func (t CardType) String() string {
	switch t {
	case CardTypeStudent:
		return "Student"
	case CardTypeTeacher:
		return "Teacher"
	default:
		return string(t)
	}
}

func (t CardType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CardType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCardType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Card is a patron's library card. (name, department, type) is unique so the
// same person/role is never issued two cards.
type Card struct {
	CardID     int64    `gorm:"column:card_id;primaryKey;autoIncrement" json:"cardId"`
	Name       string   `gorm:"column:name;size:63" json:"name"`
	Department string   `gorm:"column:department;size:63" json:"department"`
	Type       CardType `gorm:"column:type;size:1" json:"type"`
}

func (Card) TableName() string { return "card" }
