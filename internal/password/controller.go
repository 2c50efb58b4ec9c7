package password

import (
	"fmt"
	"sort"
)

// Unit is a resolved validator together with the parameters it was
// configured with. Units are immutable once loaded.
type Unit struct {
	Name      string
	Params    map[string]any
	Validator Validator
}

// LoadValidators resolves a configuration mapping (validator identifier to
// parameter set) into instantiated validator units. An identifier with no
// registered factory yields ErrValidatorNotFound. A nil or empty config
// yields an empty unit list, meaning validation trivially passes.
//
// Entries are resolved and later run in lexical identifier order, which keeps
// the fail-fast behavior deterministic across processes.
func LoadValidators(config map[string]map[string]any) ([]Unit, error) {
	if len(config) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(config))
	for name := range config {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make([]Unit, 0, len(names))
	for _, name := range names {
		factory, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (registered: %v)", ErrValidatorNotFound, name, registeredNames())
		}

		params := config[name]
		validator, err := factory(params)
		if err != nil {
			return nil, fmt.Errorf("constructing validator %q: %w", name, err)
		}

		units = append(units, Unit{Name: name, Params: params, Validator: validator})
	}

	return units, nil
}

// Controller orchestrates loading and running all configured validators
// against a candidate password.
type Controller struct {
	config map[string]map[string]any
}

// NewController creates a Controller over the given validator configuration.
func NewController(config map[string]map[string]any) *Controller {
	return &Controller{config: config}
}

// Validate runs every configured validator against the password and its
// auxiliary context fields. The first failure short-circuits the rest and is
// returned as-is; nil means the password was accepted by all validators.
//
// Each validator receives its own configured parameters merged with the
// shared password and context.
func (c *Controller) Validate(candidate string, context []Field) error {
	units, err := LoadValidators(c.config)
	if err != nil {
		return err
	}

	for _, unit := range units {
		input := Input{
			Password: candidate,
			Params:   unit.Params,
			Context:  context,
		}
		if _, err := RunCheck(unit.Validator, input, true); err != nil {
			return err
		}
	}

	return nil
}
