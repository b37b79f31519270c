package admin

import (
	"log"
	"net/http"

	"insurance-app/database"
	"insurance-app/internal/domain/subscriptions"
	"insurance-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	Nom           string  `json:"nom"`
	Prenom        string  `json:"prenom"`
	Role          string  `json:"role"`
	CodeApporteur *string `json:"code_apporteur,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// ListAllUsers returns every account for the back office. Password
// hashes never leave the handler.
func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		log.Println("admin list users error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur serveur"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, AdminUser{
			ID:            u.ID,
			Email:         u.Email,
			Nom:           u.Nom,
			Prenom:        u.Prenom,
			Role:          u.Role,
			CodeApporteur: u.CodeApporteur,
			CreatedAt:     u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

// ListAllSubscriptions returns every subscription newest-first,
// regardless of owner.
func ListAllSubscriptions(c *gin.Context) {
	subs := make([]subscriptions.Subscription, 0)
	if err := database.DB.Order("date_creation DESC").Find(&subs).Error; err != nil {
		log.Println("admin list subscriptions error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": subs})
}
