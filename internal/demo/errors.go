package demo

import "errors"

// unknownScenarioError is returned when a scenario name is not registered.
type unknownScenarioError struct{ name string }

func (e unknownScenarioError) Error() string { return "unknown scenario: " + e.name }

// IsUnknownScenario reports whether err indicates an unregistered scenario name.
func IsUnknownScenario(err error) bool {
	var u unknownScenarioError
	return errors.As(err, &u)
}
