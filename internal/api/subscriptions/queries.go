package subscriptions

import (
	"errors"

	"insurance-app/internal/domain/subscriptions"

	"gorm.io/gorm"
)

var errPolicyNumberExhausted = errors.New("could not generate a unique policy number")

const maxPolicyNumberAttempts = 5

func ownedSubscriptions(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&subscriptions.Subscription{}).Where("user_id = ?", userID)
}

// createSubscription inserts a new subscription for the owner, retrying
// policy number generation when the unique constraint fires. Two
// concurrent creations for the same product type can therefore never
// share a number, even across server instances.
func createSubscription(db *gorm.DB, userID uint, productType string, payload subscriptions.Data) (*subscriptions.Subscription, error) {
	if payload == nil {
		payload = subscriptions.Data{}
	}

	for attempt := 0; attempt < maxPolicyNumberAttempts; attempt++ {
		sub := subscriptions.Subscription{
			UserID:       userID,
			NumeroPolice: newPolicyNumber(productType),
			ProduitNom:   productType,
			Statut:       subscriptions.StatusProposition,
			Data:         payload,
		}
		err := db.Create(&sub).Error
		if err == nil {
			return &sub, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	return nil, errPolicyNumberExhausted
}

// listSubscriptions returns the owner's subscriptions newest-first,
// optionally narrowed to one status.
func listSubscriptions(db *gorm.DB, userID uint, status string) ([]subscriptions.Subscription, error) {
	q := ownedSubscriptions(db, userID)
	if status != "" {
		q = q.Where("statut = ?", status)
	}

	subs := make([]subscriptions.Subscription, 0)
	err := q.Order("date_creation DESC").Find(&subs).Error
	return subs, err
}
