package registry

// Vocabulary is an ordered, immutable set of codes. The order is the order in
// which codes were first supplied and drives indicator column order.
type Vocabulary struct {
	codes []string
	index map[string]int
}

// NewVocabulary builds a Vocabulary, dropping empty and duplicate codes.
func NewVocabulary(codes ...string) Vocabulary {
	v := Vocabulary{
		codes: make([]string, 0, len(codes)),
		index: make(map[string]int, len(codes)),
	}
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, ok := v.index[c]; ok {
			continue
		}
		v.index[c] = len(v.codes)
		v.codes = append(v.codes, c)
	}
	return v
}

// Contains reports whether code is a member.
func (v Vocabulary) Contains(code string) bool {
	_, ok := v.index[code]
	return ok
}

// Index returns the position of code, or -1.
func (v Vocabulary) Index(code string) int {
	if i, ok := v.index[code]; ok {
		return i
	}
	return -1
}

// Len returns the number of codes.
func (v Vocabulary) Len() int {
	return len(v.codes)
}

// Codes returns a copy of the codes in canonical order.
func (v Vocabulary) Codes() []string {
	out := make([]string, len(v.codes))
	copy(out, v.codes)
	return out
}

// With returns a new Vocabulary holding v's codes followed by any new ones.
func (v Vocabulary) With(codes ...string) Vocabulary {
	all := make([]string, 0, len(v.codes)+len(codes))
	all = append(all, v.codes...)
	all = append(all, codes...)
	return NewVocabulary(all...)
}

// Without returns a new Vocabulary with the given codes removed.
func (v Vocabulary) Without(drop Vocabulary) Vocabulary {
	kept := make([]string, 0, len(v.codes))
	for _, c := range v.codes {
		if !drop.Contains(c) {
			kept = append(kept, c)
		}
	}
	return NewVocabulary(kept...)
}
