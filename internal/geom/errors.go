package geom

import "github.com/cockroachdb/errors"

// Error classes. Every failure returned by the parsers is marked with
// exactly one of these and can be tested with errors.Is.
var (
	ErrLex        = errors.New("lex error")
	ErrSyntax     = errors.New("syntax error")
	ErrStructural = errors.New("structural error")
	ErrValidation = errors.New("validation error")
	ErrSemantic   = errors.New("semantic error")
)

func mark(class error, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), class)
}

// Lexf returns an error of class ErrLex.
func Lexf(format string, args ...interface{}) error { return mark(ErrLex, format, args...) }

// Syntaxf returns an error of class ErrSyntax.
func Syntaxf(format string, args ...interface{}) error { return mark(ErrSyntax, format, args...) }

// Structuralf returns an error of class ErrStructural.
func Structuralf(format string, args ...interface{}) error {
	return mark(ErrStructural, format, args...)
}

// Validationf returns an error of class ErrValidation.
func Validationf(format string, args ...interface{}) error {
	return mark(ErrValidation, format, args...)
}

// Semanticf returns an error of class ErrSemantic.
func Semanticf(format string, args ...interface{}) error {
	return mark(ErrSemantic, format, args...)
}

// Class returns the short name of the error class err belongs to, or
// "unknown".
func Class(err error) string {
	switch {
	case errors.Is(err, ErrLex):
		return "lex"
	case errors.Is(err, ErrSyntax):
		return "syntax"
	case errors.Is(err, ErrStructural):
		return "structural"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrSemantic):
		return "semantic"
	}
	return "unknown"
}
