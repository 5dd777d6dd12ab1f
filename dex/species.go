package dex

type SpeciesID int

// FormID names an alternate form. FORM_BASE is the form every species starts in.
type FormID string

const FORM_BASE FormID = ""

// FormKey indexes the flat form table
type FormKey struct {
	Species SpeciesID
	Form    FormID
}

type BaseStats struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// SpeciesTemplate is immutable. Alternate forms are separate templates sharing
// the same ID and differing in Form.
type SpeciesTemplate struct {
	ID      SpeciesID
	Form    FormID
	Name    string
	Types   []Type
	Base    BaseStats
	Ability AbilityID
	Moves   []MoveID
	Level   int
}

func (s *SpeciesTemplate) Key() FormKey {
	return FormKey{Species: s.ID, Form: s.Form}
}

func (s *SpeciesTemplate) HasType(t Type) bool {
	for _, st := range s.Types {
		if st == t {
			return true
		}
	}
	return false
}
