package wire

import "fmt"

// MappingError is returned by entity and envelope mappers when a mandatory
// field is absent or the payload structure is unrecognized. The original cause
// is kept so nested mapper failures stay traceable to the offending field.
type MappingError struct {
	Entity string
	Err    error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map %s: %v", e.Entity, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// Mapping wraps err with the entity name. Already-wrapped mapping errors pass
// through untouched so the innermost entity name wins.
func Mapping(entity string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*MappingError); ok {
		return err
	}
	return &MappingError{Entity: entity, Err: err}
}

// MissingField reports an absent mandatory field.
func MissingField(entity, field string) error {
	return &MappingError{Entity: entity, Err: fmt.Errorf("%s required", field)}
}
