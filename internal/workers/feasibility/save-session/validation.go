package savesession

import (
	"strings"
	"unicode/utf8"

	"feasibility-workers/internal/common/errors"
	"feasibility-workers/internal/common/validation"
)

const MinPasswordLength = 6

// Messages shown to the user by the account form.
const (
	MsgFieldsRequired   = "Veuillez remplir tous les champs."
	MsgPasswordMismatch = "Les mots de passe ne correspondent pas."
	MsgPasswordTooShort = "Le mot de passe doit contenir au moins 6 caractères."
	MsgEmailInvalid     = "Veuillez saisir une adresse e-mail valide."
)

// ValidateAccount runs the account form checks in display order and
// returns the first failure.
func ValidateAccount(email, password, confirm string) error {
	email = strings.TrimSpace(email)

	switch {
	case email == "":
		return errors.NewAccountValidationError(MsgFieldsRequired, "email")
	case password == "":
		return errors.NewAccountValidationError(MsgFieldsRequired, "password")
	case confirm == "":
		return errors.NewAccountValidationError(MsgFieldsRequired, "confirmPassword")
	case password != confirm:
		return errors.NewAccountValidationError(MsgPasswordMismatch, "confirmPassword")
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return errors.NewAccountValidationError(MsgPasswordTooShort, "password")
	case !validation.ValidateEmail(email):
		return errors.NewAccountValidationError(MsgEmailInvalid, "email")
	}
	return nil
}
