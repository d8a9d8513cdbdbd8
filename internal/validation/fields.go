package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Fields carries decoded request-body fields, keyed by field name.
type Fields map[string]any

// fieldOrder fixes the order in which violations are reported.
var fieldOrder = []string{"username", "email", "phone", "cnic", "password", "role"}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{11}$`)
	cnicPattern  = regexp.MustCompile(`^[0-9]{13}$`)
)

// ValidateCreate checks a create payload: all six recognized fields are
// required and must satisfy their format rules. The first violation found is
// returned as the error.
func ValidateCreate(fields Fields) error {
	if invalid := unknownFields(fields); len(invalid) > 0 {
		return fmt.Errorf("Invalid fields: %s", strings.Join(invalid, ", "))
	}
	for _, name := range fieldOrder {
		value, present := fields[name]
		if !present {
			return fmt.Errorf("%q is required", name)
		}
		if err := validateField(name, value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUpdate checks a partial-update payload: any subset of recognized
// fields is allowed, unrecognized names fail immediately, and present fields
// follow the same format rules as on create.
func ValidateUpdate(fields Fields) error {
	if invalid := unknownFields(fields); len(invalid) > 0 {
		return fmt.Errorf("Invalid fields: %s", strings.Join(invalid, ", "))
	}
	for _, name := range fieldOrder {
		value, present := fields[name]
		if !present {
			continue
		}
		if err := validateField(name, value); err != nil {
			return err
		}
	}
	return nil
}

func unknownFields(fields Fields) []string {
	var invalid []string
	for name := range fields {
		known := false
		for _, recognized := range fieldOrder {
			if name == recognized {
				known = true
				break
			}
		}
		if !known {
			invalid = append(invalid, name)
		}
	}
	sort.Strings(invalid)
	return invalid
}

func validateField(name string, value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%q must be a string", name)
	}

	switch name {
	case "username", "role":
		if str == "" {
			return fmt.Errorf("%q is not allowed to be empty", name)
		}
	case "email":
		if !emailPattern.MatchString(str) {
			return fmt.Errorf("%q must be a valid email", name)
		}
	case "phone":
		if !phonePattern.MatchString(str) {
			return fmt.Errorf("%q must be a string of 11 digits", name)
		}
	case "cnic":
		if !cnicPattern.MatchString(str) {
			return fmt.Errorf("%q must be a string of 13 digits", name)
		}
	case "password":
		if len(str) < 8 {
			return fmt.Errorf("%q length must be at least 8 characters long", name)
		}
	}
	return nil
}
