package users

import (
	"errors"
	"fmt"
)

// RegistrationInput is the JSON body accepted by the register endpoints.
type RegistrationInput struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	Civilite      string `json:"civilite"`
	DateNaissance string `json:"date_naissance"`
	LieuNaissance string `json:"lieu_naissance"`
	Telephone     string `json:"telephone"`
	Adresse       string `json:"adresse"`
	Pays          string `json:"pays"`
	CodeApporteur string `json:"code_apporteur"`
}

// MissingFieldError names the first required field found empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("le champ %s est obligatoire", e.Field)
}

var (
	ErrMissingCommercialCode = errors.New("le code apporteur est obligatoire pour les commerciaux")
	ErrCommercialEmail       = errors.New(`l'email commercial doit contenir "coriscomvi25"`)
)

// ValidateRegistration checks the required fields and, for commercial
// registrations, the commercial code and the email marker. It never
// touches the database.
func ValidateRegistration(in RegistrationInput, requireCommercialCode bool) error {
	required := []struct {
		name, value string
	}{
		{"email", in.Email},
		{"password", in.Password},
		{"nom", in.Nom},
		{"prenom", in.Prenom},
		{"telephone", in.Telephone},
	}
	for _, f := range required {
		if f.value == "" {
			return &MissingFieldError{Field: f.name}
		}
	}

	if requireCommercialCode {
		if in.CodeApporteur == "" {
			return ErrMissingCommercialCode
		}
		if DetectRole(in.Email) != RoleCommercial {
			return ErrCommercialEmail
		}
	}

	return nil
}
