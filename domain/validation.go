package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"stallion/errors"
)

var validate = validator.New()

func ValidateRace(race Race) error {
	if len(race.RaceID) != 12 {
		return fmt.Errorf("%w: got %q", errors.ErrInvalidRaceID, race.RaceID)
	}
	return validate.Struct(race)
}

func ValidateRaceResult(result RaceResult) error {
	return validate.Struct(result)
}

func ValidateHorse(horse Horse) error {
	return validate.Struct(horse)
}

// ValidateRaceDetail checks the race header and every result, returning one message per failing field.
func ValidateRaceDetail(detail RaceDetail) []string {
	var problems []string
	if err := ValidateRace(detail.Race); err != nil {
		problems = append(problems, Problems(err)...)
	}
	for i, result := range detail.Results {
		if err := ValidateRaceResult(result); err != nil {
			for _, p := range Problems(err) {
				problems = append(problems, fmt.Sprintf("result %d: %s", i, p))
			}
		}
	}
	return problems
}

// Problems flattens a validation error into readable messages.
func Problems(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	problems := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return problems
}
