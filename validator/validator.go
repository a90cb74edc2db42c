package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"hotel-manager/constants"
	"hotel-manager/errors"
	"hotel-manager/models"
)

var validate = newValidate()

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ()-]{8,20}$`)
)

func newValidate() *playground.Validate {
	v := playground.New()
	// report json/form names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Struct runs the `validate` tags of s and returns the first failure as an AppError
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(playground.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "invalid request", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return errors.NewAppError(errors.ErrCodeRequiredField, fmt.Sprintf("%s is required", fe.Field()), err)
	case "email":
		return errors.NewAppError(errors.ErrCodeInvalidFormat, fmt.Sprintf("%s must be a valid email", fe.Field()), err)
	case "min":
		return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()), err)
	case "max":
		return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()), err)
	case "gt":
		return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()), err)
	case "oneof":
		return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()), err)
	default:
		return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("%s is invalid", fe.Field()), err)
	}
}

// ValidateClient checks the fields every client must have
func ValidateClient(client *models.Client) error {
	if strings.TrimSpace(client.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "name is required", nil)
	}
	if client.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "email is required", nil)
	}
	if err := ValidateEmail(client.Email); err != nil {
		return err
	}
	if client.Phone == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "phone is required", nil)
	}
	if err := ValidatePhone(client.Phone); err != nil {
		return err
	}
	if strings.TrimSpace(client.Document) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "document is required", nil)
	}
	return nil
}

func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.Number) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "number is required", nil)
	}
	if !room.Category.IsValid() {
		return errors.NewAppError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("category must be one of: %s", joinCategories()), nil)
	}
	if room.NightlyRate <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "nightlyRate must be greater than 0", nil)
	}
	return nil
}

func joinCategories() string {
	names := make([]string, 0, len(models.RoomCategories))
	for _, c := range models.RoomCategories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "email is invalid", nil)
	}
	return nil
}

func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "phone is invalid", nil)
	}
	return nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar date at midnight UTC
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.NewAppError(errors.ErrCodeRequiredField, fmt.Sprintf("%s is required", field), nil)
	}
	if t, err := time.Parse(constants.DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field), err)
	}
	return models.DateOnly(t), nil
}
