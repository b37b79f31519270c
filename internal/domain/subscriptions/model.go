package subscriptions

import "time"

// Lifecycle markers stored in the statut column. A subscription starts
// as a proposition and becomes a contrat once validated.
const (
	StatusProposition = "proposition"
	StatusContrat     = "contrat"
)

// DocumentPathKey is the reserved payload key holding the path of the
// uploaded identity document.
const DocumentPathKey = "piece_identite_path"

type Subscription struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	// NumeroPolice is unique per product type, enforced by the composite
	// index so concurrent creations collide at the database and retry.
	NumeroPolice string `gorm:"column:numero_police;not null;uniqueIndex:idx_subscriptions_police" json:"numero_police"`
	ProduitNom   string `gorm:"column:produit_nom;not null;uniqueIndex:idx_subscriptions_police" json:"produit_nom"`

	Statut string `gorm:"type:varchar(30);not null;default:'proposition'" json:"statut"`
	Data   Data   `gorm:"column:souscriptiondata;type:jsonb" json:"souscriptiondata"`

	DateCreation   time.Time  `gorm:"column:date_creation;autoCreateTime" json:"date_creation"`
	DateValidation *time.Time `gorm:"column:date_validation" json:"date_validation,omitempty"`
}
