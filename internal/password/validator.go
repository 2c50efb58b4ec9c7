package password

// Field is a named auxiliary value a candidate password is checked against,
// such as the username or email of the account being created. Order of the
// slice is the order fields are compared in.
type Field struct {
	Name  string
	Value string
}

// Input carries everything a validator needs for a single check: the
// candidate password, validator-specific parameters from configuration,
// and the auxiliary context fields supplied by the caller.
type Input struct {
	Password string
	Params   map[string]any
	Context  []Field
}

// Validator is a single password-acceptability rule.
// Validate returns nil when the password passes, or a *ValidationError
// describing the failure. Any other error type signals an infrastructure
// problem rather than a rejected password.
type Validator interface {
	Validate(input Input) error
}

// ValidationError describes a rejected password.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Check is a single-shot validation run. Construction via RunCheck executes
// the validator immediately; the outcome is frozen afterwards.
type Check struct {
	ok  bool
	err error
}

// RunCheck runs v against input. With raiseOnFailure set, a failed validation
// is returned as the error and no Check is produced. Without it, the Check
// records the outcome for inspection via RanSuccessfully.
func RunCheck(v Validator, input Input, raiseOnFailure bool) (*Check, error) {
	err := v.Validate(input)
	if err != nil && raiseOnFailure {
		return nil, err
	}
	return &Check{ok: err == nil, err: err}, nil
}

// RanSuccessfully reports whether the validation passed.
func (c *Check) RanSuccessfully() bool {
	return c.ok
}

// Err returns the recorded validation failure, or nil on success.
func (c *Check) Err() error {
	return c.err
}

// floatParam reads a float parameter, tolerating the numeric types
// configuration decoding produces.
func floatParam(params map[string]any, key string, def float64) float64 {
	v, ok := params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

// intParam reads an integer parameter, tolerating the numeric types
// configuration decoding produces.
func intParam(params map[string]any, key string, def int) int {
	v, ok := params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}
