package handler

import (
	"context"
	"net/http"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/database"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/middleware"
	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/scanner"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
)

// Taille max d'un avatar uploadé
const maxAvatarSize = 5 << 20 // 5 MB

// GetUsers liste les joueurs actifs
func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx,
		`SELECT `+scanner.UserColumns+`
		 FROM users WHERE deleted_at IS NULL
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query users: "+err.Error())
		return
	}
	defer rows.Close()

	users := []model.UserProfile{}
	for rows.Next() {
		u, err := scanner.ScanUser(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan user row: "+err.Error())
			return
		}
		users = append(users, *u)
	}

	utils.Success(w, users)
}

// GetUser retourne le profil d'un joueur par son id
func GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT `+scanner.UserColumns+`
		 FROM users WHERE id=$1 AND deleted_at IS NULL`,
		userID,
	)
	user, err := scanner.ScanUser(row)
	if err == pgx.ErrNoRows {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch user: "+err.Error())
		return
	}

	utils.Success(w, user)
}

// UploadAvatar remplace l'image de profil de l'utilisateur connecté
// (multipart, champ "avatar")
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if cloudinarySvc == nil {
		utils.Error(w, http.StatusServiceUnavailable, "avatar upload is not configured")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	if header.Size > maxAvatarSize {
		utils.Error(w, http.StatusBadRequest, "avatar file too large (max 5 MB)")
		return
	}

	ctx := context.Background()

	url, err := cloudinarySvc.UploadAvatar(ctx, file, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar: "+err.Error())
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE users SET image=$1, updated_at=NOW() WHERE id=$2`, url, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save avatar URL: "+err.Error())
		return
	}

	utils.Success(w, map[string]string{"image": url})
}
