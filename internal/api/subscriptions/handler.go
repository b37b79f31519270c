package subscriptions

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"insurance-app/config"
	"insurance-app/database"
	"insurance-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folded "doesn't exist" and "not yours" outcome: the message never
// reveals whether the row exists for another user.
const notFoundMessage = "Souscription non trouvée"

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// subscriptionID parses the :id path segment. A non-numeric id cannot
// match any row, so it answers like a missing one.
func subscriptionID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundMessage})
		return 0, false
	}
	return uint(id), true
}

// Create inserts a new subscription owned by the caller. Everything in
// the body besides product_type goes into the open payload.
func Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	productType, _ := body["product_type"].(string)
	if productType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Le type de produit est obligatoire"})
		return
	}
	delete(body, "product_type")

	sub, err := createSubscription(database.DB, userID, productType, subscriptions.Data(body))
	if err != nil {
		log.Println("create subscription error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lors de la création de la souscription"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Souscription créée avec succès", "data": sub})
}

// UpdateStatus moves a subscription through its lifecycle and stamps
// the validation time. Scoped by owner, so a foreign id yields 404.
func UpdateStatus(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	id, ok := subscriptionID(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	res := ownedSubscriptions(database.DB, userID).
		Where("id = ?", id).
		Updates(map[string]any{"statut": body.Status, "date_validation": time.Now()})
	if res.Error != nil {
		log.Println("update status error:", res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lors de la mise à jour du statut"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundMessage})
		return
	}

	var sub subscriptions.Subscription
	if err := ownedSubscriptions(database.DB, userID).Where("id = ?", id).First(&sub).Error; err != nil {
		log.Println("reload subscription error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Statut mis à jour avec succès", "data": sub})
}

// UploadDocument stores the received file and merges its path into the
// subscription payload without disturbing the other keys.
func UploadDocument(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	id, ok := subscriptionID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Aucun fichier téléchargé"})
		return
	}

	var sub subscriptions.Subscription
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := ownedSubscriptions(tx, userID).Where("id = ?", id).First(&sub).Error; err != nil {
			return err
		}

		dest := filepath.Join(config.UPLOAD_DIR, uuid.NewString()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, dest); err != nil {
			return err
		}

		if sub.Data == nil {
			sub.Data = subscriptions.Data{}
		}
		sub.Data[subscriptions.DocumentPathKey] = dest

		return tx.Model(&sub).Update("souscriptiondata", sub.Data).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundMessage})
			return
		}
		log.Println("upload document error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lors du téléchargement du document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Document téléchargé avec succès", "data": sub})
}

func listByOwner(c *gin.Context, status string) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	subs, err := listSubscriptions(database.DB, userID, status)
	if err != nil {
		log.Println("list subscriptions error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": subs})
}

func ListPropositions(c *gin.Context) { listByOwner(c, subscriptions.StatusProposition) }

func ListContrats(c *gin.Context) { listByOwner(c, subscriptions.StatusContrat) }

func ListAll(c *gin.Context) { listByOwner(c, "") }

func GetOne(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	id, ok := subscriptionID(c)
	if !ok {
		return
	}

	var sub subscriptions.Subscription
	err := ownedSubscriptions(database.DB, userID).Where("id = ?", id).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundMessage})
			return
		}
		log.Println("get subscription error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sub})
}
