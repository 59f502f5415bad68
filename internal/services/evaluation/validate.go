package evaluation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"granteval-go/internal/model"
)

type scores struct {
	TeamScore float64 `json:"teamScore" validate:"gte=0,lte=10"`
	IdeaScore float64 `json:"ideaScore" validate:"gte=0,lte=10"`
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// report json names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func (s *Service) validateScores(team, idea float64) error {
	err := s.validate.Struct(scores{TeamScore: team, IdeaScore: idea})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &model.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, model.FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("must be between %d and %d", model.MinScore, model.MaxScore),
		})
	}
	return verr
}
