package models

// Bilingual carries the Arabic and French renditions of a display text.
type Bilingual struct {
	Ar string `json:"ar"`
	Fr string `json:"fr"`
}

// Resolve returns the text for the requested locale. The fallback chain is
// fixed everywhere: requested locale, then French, then Arabic.
func (b Bilingual) Resolve(locale string) string {
	if locale == "ar" && b.Ar != "" {
		return b.Ar
	}
	if b.Fr != "" {
		return b.Fr
	}
	return b.Ar
}

// IsEmpty reports whether neither side carries text.
func (b Bilingual) IsEmpty() bool {
	return b.Ar == "" && b.Fr == ""
}
