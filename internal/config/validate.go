package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BartekS5/gamsync/pkg/models"
	"github.com/BartekS5/gamsync/pkg/utils"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the decoded configuration and canonicalizes the format
// rules in place. The primary key is deliberately not checked here: whether
// it exists can only be decided against the report's columns.
func Validate(sc *models.SyncConfig) error {
	if err := validate.Struct(sc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := utils.CheckTableName(sc.Database.Table); err != nil {
		return fmt.Errorf("invalid config: database.table: %w", err)
	}

	rules, err := sc.Tool.DataFormatting.Normalize()
	if err != nil {
		return fmt.Errorf("invalid config: gam.data_formatting: %w", err)
	}
	sc.Tool.DataFormatting = rules

	for from, to := range sc.Tool.Mappings {
		if !utils.IsIdentifier(to) {
			return fmt.Errorf("invalid config: gam.mappings[%s]: %q is not a valid column name", from, to)
		}
	}
	if sc.Tool.Timeout < 0 {
		return errors.New("invalid config: gam.timeout must not be negative")
	}
	return nil
}
