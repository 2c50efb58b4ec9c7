package password

import "unicode"

// StrengthValidator rejects passwords that do not meet configured character
// composition minimums. It reports a single generic failure message without
// naming the unmet rule.
type StrengthValidator struct {
	uppercase int
	numbers   int
	special   int
}

// NewStrengthValidator builds the validator from its configured parameters.
// Recognized parameters:
//
//	uppercase (int, default 1) - minimum uppercase letters
//	numbers   (int, default 0) - minimum digits
//	special   (int, default 0) - minimum special characters
func NewStrengthValidator(params map[string]any) (Validator, error) {
	return &StrengthValidator{
		uppercase: intParam(params, "uppercase", 1),
		numbers:   intParam(params, "numbers", 0),
		special:   intParam(params, "special", 0),
	}, nil
}

// Validate implements the Validator interface.
func (v *StrengthValidator) Validate(input Input) error {
	var uppercase, numbers, special int
	for _, r := range input.Password {
		switch {
		case unicode.IsUpper(r):
			uppercase++
		case unicode.IsDigit(r):
			numbers++
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special++
		}
	}

	if uppercase < v.uppercase || numbers < v.numbers || special < v.special {
		return &ValidationError{Message: "password is too weak"}
	}
	return nil
}
