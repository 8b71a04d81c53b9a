// Package seedadmin implements the interactive creation of an admin account.
package seedadmin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
	"github.com/dmitrijs2005/coursehub/internal/server/validation"
	"github.com/go-playground/validator/v10"
)

// SignUpper is implemented by *services.PrincipalService.
type SignUpper interface {
	SignUp(ctx context.Context, in services.SignUpInput) (*models.Principal, error)
}

type Prompter struct {
	In       *bufio.Reader
	Out      io.Writer
	Terminal int
}

// Run asks for the admin's details and creates the account. Answers are
// checked against the same rules as the admin sign-up endpoint.
func Run(ctx context.Context, p Prompter, admins SignUpper) (*models.Principal, error) {
	v, err := validation.New()
	if err != nil {
		return nil, err
	}

	var form validation.SignUpForm

	form.Email, err = GetSimpleText(p.In, "Admin email", p.Out)
	if err != nil {
		return nil, err
	}
	if err := check(v, &form, "Email"); err != nil {
		return nil, err
	}

	form.FirstName, err = GetSimpleText(p.In, "First name", p.Out)
	if err != nil {
		return nil, err
	}
	if err := check(v, &form, "FirstName"); err != nil {
		return nil, err
	}

	last, err := GetSimpleText(p.In, "Last name (optional)", p.Out)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if last != "" {
		form.LastName = &last
	}
	if err := check(v, &form, "LastName"); err != nil {
		return nil, err
	}

	password, err := GetPassword(p.Terminal, p.Out)
	if err != nil {
		return nil, err
	}
	defer clear(password)
	form.Password = string(password)

	if err := check(v, &form); err != nil {
		return nil, err
	}

	admin, err := admins.SignUp(ctx, form.Input())
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("admin %s already exists", form.Email)
		}
		return nil, err
	}

	return admin, nil
}

// check validates the named fields of form, or all of them when none are
// named.
func check(v *validator.Validate, form *validation.SignUpForm, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.Struct(form)
	} else {
		err = v.StructPartial(form, fields...)
	}
	if err == nil {
		return nil
	}
	return errors.New(strings.Join(validation.Messages(validation.Issues(err)), "; "))
}
