package domain

// SuggestionFilter defines parameters for querying pending suggestions.
// All pointer fields are equality filters; nil means no filter.
type SuggestionFilter struct {
	// SourceLang filters by the language the word was submitted in.
	SourceLang *string

	// BaseWord matches base_word case-insensitively.
	BaseWord *string

	// Category filters suggestions carrying the given category label.
	Category *string

	// Limit is the maximum number of rows to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of rows to skip.
	Offset int
}

const (
	DefaultFilterLimit = 50
	MaxFilterLimit     = 200
)

// Normalize applies defaults and clamps pagination values.
func (f *SuggestionFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultFilterLimit
	}
	if f.Limit > MaxFilterLimit {
		f.Limit = MaxFilterLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
