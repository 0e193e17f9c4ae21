package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the resolved Config structure.
// Violations are fatal at startup: the process refuses to run with
// contradictory or malformed settings.
func ValidateConfig(cfg *Config) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal":
			return true
		}
		return false
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		}
		return false
	})

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			messages := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf(
					"field '%s' failed on '%s' (value: %v)",
					fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Value(),
				))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(messages, "; "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Cross-field invariant the struct tags cannot express.
	if cfg.ChunkConfig.MaxChunkSize < cfg.ChunkConfig.ChunkSize {
		return fmt.Errorf(
			"config validation failed: max_chunk_size (%d) must be >= chunk_size (%d)",
			cfg.ChunkConfig.MaxChunkSize, cfg.ChunkConfig.ChunkSize,
		)
	}

	return nil
}
