package config

import "github.com/alokX01/focusflow/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidDurationStr = &apperr.Error{
		Message: "invalid duration: %s",
	}

	errShortBreakTooLong = &apperr.Error{
		Message: "short break duration (%v) must be less than work duration (%v)",
	}

	errLongBreakTooShort = &apperr.Error{
		Message: "long break duration (%v) must be greater than short break duration (%v)",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errInvalidLongBreakInterval = &apperr.Error{
		Message: "long break interval must be between %d and %d sessions",
	}

	errInvalidConfidence = &apperr.Error{
		Message: "minimum confidence must be between 0 and 1, got %v",
	}

	errInvalidRate = &apperr.Error{
		Message: "%s must be greater than zero, got %v",
	}

	errInvalidWindow = &apperr.Error{
		Message: "%s must be a positive duration, got %v",
	}
)
