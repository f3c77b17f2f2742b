package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pulseclub/go-pulse/service/persist"
)

// ValidationMap maps field names to values and their validation tags
type ValidationMap map[string]ValWithTags

type ValWithTags struct {
	Value any
	Tag   string
}

// WithTag pairs a value with a validation tag for use in a ValidationMap
func WithTag(value any, tag string) ValWithTags {
	return ValWithTags{Value: value, Tag: tag}
}

// ValidateFields validates every entry of the map and collects all failures into one error
func ValidateFields(v *validator.Validate, fields ValidationMap) error {
	validationErr := ErrInvalidInput{}
	foundErrors := false

	for k, t := range fields {
		err := v.Var(t.Value, t.Tag)
		if err != nil {
			foundErrors = true
			validationErr.Append(k, err.Error())
		}
	}

	if foundErrors {
		return validationErr
	}

	return nil
}

// ErrInvalidInput aggregates per-parameter validation failures
type ErrInvalidInput struct {
	Parameters []string
	Reasons    []string
}

func (e *ErrInvalidInput) Append(parameter string, reason string) {
	e.Parameters = append(e.Parameters, parameter)
	e.Reasons = append(e.Reasons, reason)
}

func (e ErrInvalidInput) Error() string {
	str := "invalid input:\n"
	for i := range e.Parameters {
		str += fmt.Sprintf("    parameter: %s, reason: %s\n", e.Parameters[i], e.Reasons[i])
	}
	return str
}

// RegisterCustomValidators adds the app's custom validators to a validator instance
func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("activity_type", ActivityTypeValidator)
	v.RegisterValidation("difficulty", DifficultyValidator)
	v.RegisterValidation("suggestion_strategy", SuggestionStrategyValidator)
	v.RegisterValidation("sorted_asc", SortedAscValidator)
}

// ActivityTypeValidator validates that a field is a known activity type
func ActivityTypeValidator(f validator.FieldLevel) bool {
	switch persist.ActivityType(f.Field().String()) {
	case persist.ActivityTypeWorkout, persist.ActivityTypeMentalSession, persist.ActivityTypeRun, persist.ActivityTypePersonalRecord:
		return true
	}
	return false
}

// DifficultyValidator validates that a field is a known challenge difficulty
func DifficultyValidator(f validator.FieldLevel) bool {
	switch persist.ChallengeDifficulty(f.Field().String()) {
	case persist.ChallengeDifficultyEasy, persist.ChallengeDifficultyMedium, persist.ChallengeDifficultyHard, persist.ChallengeDifficultyExpert:
		return true
	}
	return false
}

// SuggestionStrategyValidator validates a friend-suggestion strategy name
func SuggestionStrategyValidator(f validator.FieldLevel) bool {
	switch strings.ToLower(f.Field().String()) {
	case "mutual", "multihop", "interest", "hybrid":
		return true
	}
	return false
}

// SortedAscValidator validates that a string slice is sorted ascending
func SortedAscValidator(f validator.FieldLevel) bool {
	s, ok := f.Field().Interface().([]string)
	if !ok {
		return false
	}
	return sort.StringsAreSorted(s)
}
