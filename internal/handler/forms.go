package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterForm carries the /register POST body.
type RegisterForm struct {
	Firstname       string `form:"firstname" validate:"required"`
	Lastname        string `form:"lastname" validate:"required"`
	Username        string `form:"username" validate:"required,min=3,max=20,username"`
	Password        string `form:"password" validate:"required,min=8,max=64,hasupper,haslower,hasdigit"`
	ConfirmPassword string `form:"confirmpassword" validate:"required,eqfield=Password"`
}

func (f *RegisterForm) normalize() {
	f.Firstname = strings.TrimSpace(f.Firstname)
	f.Lastname = strings.TrimSpace(f.Lastname)
	f.Username = strings.TrimSpace(f.Username)
}

// clearPasswords blanks the password fields so they are never echoed back
// into a re-rendered form.
func (f *RegisterForm) clearPasswords() {
	f.Password = ""
	f.ConfirmPassword = ""
}

// LoginForm carries the /login POST body.
type LoginForm struct {
	Username string `form:"username" validate:"required,min=3,max=20,username"`
	Password string `form:"password" validate:"required,min=8,max=64,hasupper,haslower,hasdigit"`
}

func (f *LoginForm) normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

func (f *LoginForm) clearPasswords() {
	f.Password = ""
}

// MessageForm carries the /newmessage POST body.
type MessageForm struct {
	Title string `form:"title" validate:"required"`
	Body  string `form:"body" validate:"required"`
}

func (f *MessageForm) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Body = strings.TrimSpace(f.Body)
}

// SecretForm carries the /newmember and /newadmin POST bodies.
type SecretForm struct {
	SecretPass string `form:"secretpass" validate:"required"`
}

// formPage is the data shape shared by all form templates.
type formPage struct {
	Errors []string
	Form   interface{}
}

// fieldMessages maps a failing field/rule pair to the message rendered
// inline on the form.
var fieldMessages = map[string]string{
	"Firstname:required":       "First name is required",
	"Lastname:required":        "Last name is required",
	"Username:required":        "Username is required",
	"Username:min":             "Username must be between 3 and 20 characters long",
	"Username:max":             "Username must be between 3 and 20 characters long",
	"Username:username":        "Username must contain only letters, numbers, underscores, or periods",
	"Password:required":        "Password is required",
	"Password:min":             "Password must be between 8 and 64 characters long",
	"Password:max":             "Password must be between 8 and 64 characters long",
	"Password:hasupper":        "Password must contain at least one uppercase letter",
	"Password:haslower":        "Password must contain at least one lowercase letter",
	"Password:hasdigit":        "Password must contain at least one number",
	"ConfirmPassword:required": "Passwords do not match",
	"ConfirmPassword:eqfield":  "Passwords do not match",
	"Title:required":           "Title is required",
	"Body:required":            "Content is required",
	"SecretPass:required":      "Secret pass is required",
}

// formErrors translates validator failures into the inline messages. Each
// named validation step yields one message, in declaration order.
func formErrors(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"Invalid form submission"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()+":"+fe.Tag()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("Invalid value for %s", fe.Field()))
	}
	return msgs
}
