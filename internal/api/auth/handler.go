package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"insurance-app/config"
	"insurance-app/database"
	"insurance-app/internal/domain/users"
	"insurance-app/internal/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Unknown email and wrong password answer alike so the API does not
// reveal which emails are registered.
const invalidCredentialsMessage = "Email ou mot de passe incorrect"

type publicUser struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	Nom           string  `json:"nom"`
	Prenom        string  `json:"prenom"`
	Role          string  `json:"role"`
	CodeApporteur *string `json:"code_apporteur,omitempty"`
}

func toPublicUser(u users.User) publicUser {
	return publicUser{
		ID:            u.ID,
		Email:         u.Email,
		Nom:           u.Nom,
		Prenom:        u.Prenom,
		Role:          u.Role,
		CodeApporteur: u.CodeApporteur,
	}
}

func parseBirthDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func Register(c *gin.Context) {
	var input users.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	if err := users.ValidateRegistration(input, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	hash, err := users.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lors de l'inscription"})
		return
	}

	user := users.User{
		Email:         input.Email,
		PasswordHash:  hash,
		Role:          users.DetectRole(input.Email),
		Nom:           input.Nom,
		Prenom:        input.Prenom,
		Civilite:      input.Civilite,
		DateNaissance: parseBirthDate(input.DateNaissance),
		LieuNaissance: input.LieuNaissance,
		Telephone:     input.Telephone,
		Adresse:       input.Adresse,
		Pays:          input.Pays,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte existe déjà avec cet email"})
			return
		}
		log.Println("register insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lors de l'inscription"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": toPublicUser(user)})
}

// RegisterCommercial creates a commercial account. The route gate
// (admin role) lives in the middleware, the handler trusts its caller.
func RegisterCommercial(c *gin.Context) {
	var input users.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	if err := users.ValidateRegistration(input, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	hash, err := users.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lors de l'inscription"})
		return
	}

	code := input.CodeApporteur
	user := users.User{
		Email:         input.Email,
		PasswordHash:  hash,
		Role:          users.RoleCommercial,
		Nom:           input.Nom,
		Prenom:        input.Prenom,
		Civilite:      input.Civilite,
		Telephone:     input.Telephone,
		Adresse:       input.Adresse,
		Pays:          input.Pays,
		CodeApporteur: &code,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte existe déjà avec cet email"})
			return
		}
		log.Println("register commercial insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lors de l'inscription"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": toPublicUser(user)})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentialsMessage})
		return
	}

	if !users.CheckPassword(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentialsMessage})
		return
	}

	code := ""
	if user.CodeApporteur != nil {
		code = *user.CodeApporteur
	}
	tokenString, err := token.Default.Issue(token.Claims{
		UserID:        user.ID,
		Email:         user.Email,
		Role:          user.Role,
		CodeApporteur: code,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": tokenString, "user": toPublicUser(user)})
}

func Profile(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Utilisateur non trouvé"})
			return
		}
		log.Println("profile query error:", err)
		resp := gin.H{"success": false, "message": "Erreur serveur lors de la récupération du profil"}
		if config.IsDevelopment() {
			resp["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	profile := gin.H{
		"id":             user.ID,
		"email":          user.Email,
		"nom":            user.Nom,
		"prenom":         user.Prenom,
		"civilite":       user.Civilite,
		"lieu_naissance": user.LieuNaissance,
		"telephone":      user.Telephone,
		"adresse":        user.Adresse,
		"pays":           user.Pays,
		"created_at":     user.CreatedAt,
	}
	if user.DateNaissance != nil {
		profile["date_naissance"] = user.DateNaissance.Format("2006-01-02")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}
