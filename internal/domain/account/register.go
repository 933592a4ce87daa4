package account

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// Registration wizard steps.
const (
	StepBasicInfo = 1
	StepRole      = 2
	StepDetails   = 3
	TotalSteps    = 3
)

// Registration is the accumulated form state of the registration wizard.
// Fields are validated per step; a step must pass before the wizard
// advances, and the final step revalidates its own fields only.
type Registration struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`

	Role Role `json:"role" validate:"required,oneof=buyer traveler"`

	DepartureCountry    string   `json:"departureCountry" validate:"required_if=Role traveler"`
	DepartureAirports   []string `json:"departureAirports" validate:"required_if=Role traveler"`
	BuyerCountry        string   `json:"buyerCountry" validate:"required_if=Role buyer"`
	PreferredCategories []string `json:"preferredCategories" validate:"required_if=Role buyer"`

	AgreeToTerms   bool `json:"agreeToTerms" validate:"required"`
	AgreeToPrivacy bool `json:"agreeToPrivacy" validate:"required"`
}

// Payload is the subset of the form sent to the register endpoint.
type Payload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Payload projects the form onto the register request body.
func (r Registration) Payload() Payload {
	return Payload{
		FullName: r.FullName,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

var stepFields = map[int][]string{
	StepBasicInfo: {"FullName", "Email", "Password", "ConfirmPassword"},
	StepRole:      {"Role"},
	StepDetails: {
		"DepartureCountry", "DepartureAirports",
		"BuyerCountry", "PreferredCategories",
		"AgreeToTerms", "AgreeToPrivacy",
	},
}

var (
	valOnce  sync.Once
	validate *validator.Validate
	trans    ut.Translator
)

// initValidator builds the singleton validator with english translations
// and json tag names in messages.
func initValidator() {
	valOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ = uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = entrans.RegisterDefaultTranslations(v, trans)

		validate = v
	})
}

// ValidateStep validates the fields belonging to one wizard step and
// returns a map of json field name to a human-readable message. An empty
// map means the step may commit.
func ValidateStep(r Registration, step int) (map[string]string, error) {
	fields, ok := stepFields[step]
	if !ok {
		return nil, fmt.Errorf("unknown registration step %d", step)
	}
	initValidator()

	errs := map[string]string{}
	err := validate.StructPartial(r, fields...)
	if err == nil {
		return errs, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate step %d: %w", step, err)
	}
	for _, fe := range verrs {
		errs[fe.Field()] = fe.Translate(trans)
	}
	return errs, nil
}

// ValidateAll validates the whole form, as done right before submit.
func ValidateAll(r Registration) (map[string]string, error) {
	all := map[string]string{}
	for step := StepBasicInfo; step <= TotalSteps; step++ {
		errs, err := ValidateStep(r, step)
		if err != nil {
			return nil, err
		}
		for k, v := range errs {
			all[k] = v
		}
	}
	return all, nil
}
