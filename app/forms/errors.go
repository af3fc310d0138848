package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ManuelReschke/Yatube/app/models"
)

// Messages shown next to form fields
const (
	MsgRequired        = "This field is required."
	MsgInvalidChoice   = "Select a valid choice. That choice is not one of the available choices."
	MsgInvalidEmail    = "Enter a valid email address."
	MsgInvalidName     = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgUsernameTaken   = "A user with that username already exists."
	MsgPasswordsDiffer = "The two password fields didn’t match."
	MsgInvalidLogin    = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

// NonFieldErrors is the key for errors not tied to a single input
const NonFieldErrors = "__all__"

// FieldErrors collects validation messages per form field
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message of field or ""
func (e FieldErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

var validate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := models.NewValidator()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// check runs the struct validator over form and records failures in errs
func check(form interface{}, errs FieldErrors) {
	err := validate.Struct(form)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonFieldErrors, err.Error())
		return
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "username":
		return MsgInvalidName
	case "eqfield":
		return MsgPasswordsDiffer
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), len([]rune(fmt.Sprint(fe.Value()))))
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Invalid value for %s.", fe.Field())
	}
}
