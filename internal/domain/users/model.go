package users

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'client'" json:"role"`

	Nom           string     `json:"nom"`
	Prenom        string     `json:"prenom"`
	Civilite      string     `json:"civilite"`
	DateNaissance *time.Time `gorm:"column:date_naissance" json:"date_naissance,omitempty"`
	LieuNaissance string     `gorm:"column:lieu_naissance" json:"lieu_naissance"`
	Telephone     string     `json:"telephone"`
	Adresse       string     `json:"adresse"`
	Pays          string     `json:"pays"`

	// Only set for commercial accounts.
	CodeApporteur *string `gorm:"column:code_apporteur" json:"code_apporteur,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
