package flow

import "maps"

// Gender is the registration form's single required selection.
type Gender int

const (
	GenderNone Gender = iota
	Male
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return "none"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// State is the ephemeral UI state of one page: the loading overlay, form fields and toggles.
// It is never shared between pages and is dropped when its page unmounts.
type State struct {
	Loading bool
	Gender  Gender
	Fields  map[string]string
	Toggles map[string]bool
}

// NewState creates an empty [State].
func NewState() *State {
	return &State{Fields: map[string]string{}, Toggles: map[string]bool{}}
}

// Field returns the value of a form field, or the empty string.
func (s *State) Field(name string) string {
	return s.Fields[name]
}

// SetField stores a form field value.
func (s *State) SetField(name, value string) {
	s.Fields[name] = value
}

// Toggle flips a named boolean and returns its new value.
func (s *State) Toggle(name string) bool {
	s.Toggles[name] = !s.Toggles[name]
	return s.Toggles[name]
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	return &State{
		Loading: s.Loading,
		Gender:  s.Gender,
		Fields:  maps.Clone(s.Fields),
		Toggles: maps.Clone(s.Toggles),
	}
}

// restore overwrites s with snapshot, keeping s's identity for holders of the pointer.
func (s *State) restore(snapshot *State) {
	*s = *snapshot.Clone()
}
