package subscriptions

import (
	"testing"

	"insurance-app/internal/domain/subscriptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyNumbersDistinct(t *testing.T) {
	db := setupTestDB(t)

	seen := make(map[string]bool)
	for i := 0; i < 40; i++ {
		sub, err := createSubscription(db, 1, "sante", nil)
		require.NoError(t, err)
		require.False(t, seen[sub.NumeroPolice], "duplicate policy number %s", sub.NumeroPolice)
		seen[sub.NumeroPolice] = true
	}
}

func TestCreateSubscriptionRetriesOnCollision(t *testing.T) {
	db := setupTestDB(t)

	orig := newPolicyNumber
	defer func() { newPolicyNumber = orig }()

	calls := 0
	newPolicyNumber = func(productType string) string {
		calls++
		if calls == 1 {
			return "SANTE-TAKEN"
		}
		return "SANTE-FRESH"
	}

	taken := subscriptions.Subscription{UserID: 2, NumeroPolice: "SANTE-TAKEN", ProduitNom: "sante", Statut: subscriptions.StatusProposition, Data: subscriptions.Data{}}
	require.NoError(t, db.Create(&taken).Error)

	sub, err := createSubscription(db, 1, "sante", nil)
	require.NoError(t, err)
	assert.Equal(t, "SANTE-FRESH", sub.NumeroPolice)
	assert.Equal(t, 2, calls)
}

func TestCreateSubscriptionGivesUpAfterRetries(t *testing.T) {
	db := setupTestDB(t)

	orig := newPolicyNumber
	defer func() { newPolicyNumber = orig }()

	calls := 0
	newPolicyNumber = func(productType string) string {
		calls++
		return "AUTO-STUCK"
	}

	taken := subscriptions.Subscription{UserID: 2, NumeroPolice: "AUTO-STUCK", ProduitNom: "auto", Statut: subscriptions.StatusProposition, Data: subscriptions.Data{}}
	require.NoError(t, db.Create(&taken).Error)

	_, err := createSubscription(db, 1, "auto", nil)
	require.ErrorIs(t, err, errPolicyNumberExhausted)
	assert.Equal(t, maxPolicyNumberAttempts, calls)
}

func TestSamePolicyNumberAllowedAcrossProductTypes(t *testing.T) {
	db := setupTestDB(t)

	a := subscriptions.Subscription{UserID: 1, NumeroPolice: "X-1", ProduitNom: "sante", Statut: subscriptions.StatusProposition, Data: subscriptions.Data{}}
	require.NoError(t, db.Create(&a).Error)

	// uniqueness is scoped per product type
	b := subscriptions.Subscription{UserID: 1, NumeroPolice: "X-1", ProduitNom: "auto", Statut: subscriptions.StatusProposition, Data: subscriptions.Data{}}
	assert.NoError(t, db.Create(&b).Error)

	c := subscriptions.Subscription{UserID: 2, NumeroPolice: "X-1", ProduitNom: "sante", Statut: subscriptions.StatusProposition, Data: subscriptions.Data{}}
	assert.Error(t, db.Create(&c).Error)
}
