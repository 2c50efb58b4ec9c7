package password

import (
	"fmt"

	"github.com/agext/levenshtein"
)

// DefaultSimilarityCoefficient is the similarity ratio above which a password
// is considered too close to a profile field.
const DefaultSimilarityCoefficient = 0.7

// LevenshteinValidator rejects passwords that are too textually similar to
// any of the caller-supplied context fields. Similarity is the normalized
// edit-distance ratio in [0,1], where 1 means identical. Comparison is exact:
// no case folding or whitespace normalization is applied.
type LevenshteinValidator struct {
	coefficient float64
}

// NewLevenshteinValidator builds the validator from its configured
// parameters. Recognized parameters:
//
//	coefficient (float, default 0.7) - similarity strictly above this fails
func NewLevenshteinValidator(params map[string]any) (Validator, error) {
	return &LevenshteinValidator{
		coefficient: floatParam(params, "coefficient", DefaultSimilarityCoefficient),
	}, nil
}

// Validate implements the Validator interface. Fields are checked in the
// order supplied; the first violation fails the check and names the field.
func (v *LevenshteinValidator) Validate(input Input) error {
	for _, field := range input.Context {
		similarity := levenshtein.Similarity(input.Password, field.Value, nil)
		if similarity > v.coefficient {
			return &ValidationError{
				Message: fmt.Sprintf("password is too similar to %s", field.Name),
			}
		}
	}
	return nil
}
