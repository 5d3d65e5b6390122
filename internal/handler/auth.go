package handler

import (
	"context"
	"net/http"
	"regexp"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/database"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/middleware"
	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
	"github.com/jackc/pgx/v5"

	"golang.org/x/crypto/bcrypt"
)

// Le "mot de passe" du jeu est un PIN à 4 chiffres, stocké haché
var pinFormat = regexp.MustCompile(`^\d{4}$`)

type loginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// Login authentifie un joueur guest par pseudo + PIN et ouvre une session
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Nickname == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Nickname and password are required")
		return
	}
	if !pinFormat.MatchString(req.Password) {
		utils.Error(w, http.StatusBadRequest, "Password must be exactly 4 digits")
		return
	}

	ctx := context.Background()

	var user model.UserProfile
	var pinHash string
	err := database.DB.QueryRow(ctx,
		`SELECT id, username, COALESCE(email,''), COALESCE(pin_hash,'')
		 FROM users WHERE username=$1 AND deleted_at IS NULL`,
		req.Nickname,
	).Scan(&user.ID, &user.Username, &user.Email, &pinHash)

	if err == pgx.ErrNoRows {
		utils.Error(w, http.StatusNotFound, "No account found with this nickname. Please check your nickname or sign up for a new account.")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not look up user: "+err.Error())
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(req.Password)) != nil {
		utils.Error(w, http.StatusUnauthorized, "Incorrect password. Please try again.")
		return
	}

	_, _ = database.DB.Exec(ctx,
		`UPDATE users SET last_login=NOW(), updated_at=NOW() WHERE id=$1`, user.ID)

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Register crée un compte guest (pseudo + email + PIN haché)
func Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Username, email, and password are required")
		return
	}
	if !pinFormat.MatchString(payload.Password) {
		utils.Error(w, http.StatusBadRequest, "Password must be exactly 4 digits")
		return
	}

	if payload.UserID == "" {
		payload.UserID = utils.GenerateUserID(payload.Username)
	}

	ctx := context.Background()

	var exists bool
	err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users
		 WHERE (username=$1 OR email=$2 OR id=$3) AND deleted_at IS NULL)`,
		payload.Username, payload.Email, payload.UserID,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check user: "+err.Error())
		return
	}
	if exists {
		utils.Error(w, http.StatusBadRequest, "User already exists with this username, email, or ID")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	var user model.UserProfile
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(id, username, email, pin_hash, provider, last_login, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, NOW(), NOW(), NOW())
		 RETURNING id, username, email, provider, created_at`,
		payload.UserID, payload.Username, payload.Email, string(hashed), model.ProviderGuest,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Provider, &user.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user: "+err.Error())
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session: "+err.Error())
		return
	}

	utils.Created(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// CheckUser vérifie si un pseudo existe déjà : s'il existe, valide le PIN ;
// sinon propose un nouvel userId au client
func CheckUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.Username == "" || payload.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx := context.Background()

	var userID, username, email, pinHash string
	err := database.DB.QueryRow(ctx,
		`SELECT id, username, COALESCE(email,''), COALESCE(pin_hash,'')
		 FROM users WHERE (username=$1 OR email=$2) AND deleted_at IS NULL`,
		payload.Username, payload.Email,
	).Scan(&userID, &username, &email, &pinHash)

	if err == pgx.ErrNoRows {
		// Nouveau joueur : proposer un identifiant
		utils.Success(w, map[string]interface{}{
			"exists":   false,
			"userId":   utils.GenerateUserID(payload.Username),
			"username": payload.Username,
			"email":    payload.Email,
		})
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check user: "+err.Error())
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(payload.Password)) != nil {
		utils.Error(w, http.StatusUnauthorized, "Incorrect password. Please try again.")
		return
	}

	utils.Success(w, map[string]interface{}{
		"exists":        true,
		"authenticated": true,
		"userId":        userID,
		"username":      username,
		"email":         email,
	})
}

// ResetPassword réinitialise le PIN d'un compte guest : le couple
// pseudo + email fait office de vérification d'identité
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Nickname    string `json:"nickname"`
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.Nickname == "" || payload.Email == "" || payload.NewPassword == "" {
		utils.Error(w, http.StatusBadRequest, "Nickname, email, and new password are required")
		return
	}
	if !pinFormat.MatchString(payload.NewPassword) {
		utils.Error(w, http.StatusBadRequest, "Password must be exactly 4 digits")
		return
	}

	ctx := context.Background()

	var userID, username, email string
	err := database.DB.QueryRow(ctx,
		`SELECT id, username, COALESCE(email,'')
		 FROM users WHERE username=$1 AND email=$2 AND deleted_at IS NULL`,
		payload.Nickname, payload.Email,
	).Scan(&userID, &username, &email)

	if err == pgx.ErrNoRows {
		utils.Error(w, http.StatusNotFound, "No account found with this nickname and email combination. Please check your information.")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not look up user: "+err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE users SET pin_hash=$1, updated_at=NOW() WHERE id=$2`,
		string(hashed), userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update password: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"message": "Password reset successfully",
		"user": map[string]string{
			"userId":   userID,
			"username": username,
			"email":    email,
		},
	})
}

// XLogin connecte (ou crée) un compte X/Twitter : upsert sur twitter_id
func XLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TwitterID string `json:"twitterId"`
		Username  string `json:"username"`
		Name      string `json:"name"`
		Image     string `json:"image"`
		Provider  string `json:"provider"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.TwitterID == "" || payload.Username == "" {
		utils.Error(w, http.StatusBadRequest, "Twitter ID and username are required")
		return
	}
	if payload.Provider == "" {
		payload.Provider = model.ProviderTwitter
	}

	ctx := context.Background()

	var user model.UserProfile
	err := database.DB.QueryRow(ctx,
		`SELECT id, username, COALESCE(name,''), COALESCE(image,'')
		 FROM users WHERE (twitter_id=$1 OR username=$2) AND deleted_at IS NULL`,
		payload.TwitterID, payload.Username,
	).Scan(&user.ID, &user.Username, &user.Name, &user.Image)

	switch {
	case err == pgx.ErrNoRows:
		// Premier login X : créer le compte
		user.ID = utils.GenerateTwitterUserID(payload.TwitterID)
		user.Username = payload.Username
		user.Name = payload.Name
		user.Image = payload.Image

		_, err = database.DB.Exec(ctx,
			`INSERT INTO users(id, username, name, image, twitter_id, provider, last_login, created_at, updated_at)
			 VALUES($1, $2, $3, $4, $5, $6, NOW(), NOW(), NOW())`,
			user.ID, user.Username, user.Name, user.Image, payload.TwitterID, payload.Provider,
		)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not create X user: "+err.Error())
			return
		}

	case err != nil:
		utils.Error(w, http.StatusInternalServerError, "could not look up X user: "+err.Error())
		return

	default:
		// Compte connu : rafraîchir les infos du profil X
		user.Name = payload.Name
		user.Image = payload.Image

		_, err = database.DB.Exec(ctx,
			`UPDATE users SET name=$1, image=$2, last_login=NOW(), updated_at=NOW() WHERE id=$3`,
			user.Name, user.Image, user.ID,
		)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update X user: "+err.Error())
			return
		}
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout invalide la session courante
func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing token")
		return
	}

	ctx := context.Background()

	if err := utils.InvalidateSession(ctx, token); err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}
