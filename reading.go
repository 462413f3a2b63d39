package eazyhealth

// ReadingLevel is a target comprehension tier for generated text.
type ReadingLevel string

// Reading levels.
const (
	Grade3     ReadingLevel = "grade3"
	Grade6     ReadingLevel = "grade6"
	Grade8     ReadingLevel = "grade8"
	HighSchool ReadingLevel = "high_school"
	College    ReadingLevel = "college"
)

// ReadingLevels lists every level in ascending difficulty.
var ReadingLevels = []ReadingLevel{Grade3, Grade6, Grade8, HighSchool, College}

var readingInstructions = map[ReadingLevel]string{
	Grade3:     "Use very simple words (3-4 letters), short sentences (5-8 words), and explain every term. Write as if explaining to an 8-year-old.",
	Grade6:     "Use simple language, short sentences (8-12 words), and avoid jargon. Explain medical terms when used. Write at a middle school level.",
	Grade8:     "Use clear, straightforward language with sentences of moderate length. Define technical terms but can use more health vocabulary. Write at an 8th-grade level.",
	HighSchool: "Use standard vocabulary including common medical terminology. Sentences can be longer and more complex. Assume basic health literacy.",
	College:    "Use advanced vocabulary and medical terminology freely. Complex sentence structures are acceptable. Assume college-level health knowledge.",
}

// ParseReadingLevel returns the level named by s.
func ParseReadingLevel(s string) (ReadingLevel, error) {
	l := ReadingLevel(s)
	if _, ok := readingInstructions[l]; !ok {
		return "", Errorf(EINVALID, "unknown reading level %q", s)
	}
	return l, nil
}

// Valid reports whether l is one of the known levels.
func (l ReadingLevel) Valid() bool {
	_, ok := readingInstructions[l]
	return ok
}

// Instruction returns the prompt instruction for l, or "" for unknown levels.
func (l ReadingLevel) Instruction() string {
	return readingInstructions[l]
}

// InstructionOr returns the instruction for l, using fallback's instruction
// when l is not a known level.
func (l ReadingLevel) InstructionOr(fallback ReadingLevel) string {
	if s, ok := readingInstructions[l]; ok {
		return s
	}
	return readingInstructions[fallback]
}
