package generation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Card count bounds for a single request.
const (
	MinCount = 1
	MaxCount = 50
)

var validate = validator.New()

// Request describes the deck to generate.
type Request struct {
	Topic    string `validate:"required"`
	AgeRange string `validate:"required"`
	Count    int    `validate:"min=1,max=50"`
}

// Validate checks that the topic and age range are present and the count
// is within MinCount..MaxCount.
func (r Request) Validate() error {
	trimmed := Request{
		Topic:    strings.TrimSpace(r.Topic),
		AgeRange: strings.TrimSpace(r.AgeRange),
		Count:    r.Count,
	}

	if err := validate.Struct(trimmed); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
