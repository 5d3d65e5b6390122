package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/database"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/middleware"
	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/scanner"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/scoring"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Code Postgres "unique_violation", levé quand deux POST concurrents
// tentent de créer la même (user, semaine)
const uniqueViolation = "23505"

type predictionRequest struct {
	UserID       string  `json:"userId"`
	PredictedMin float64 `json:"predictedMin"`
	PredictedMax float64 `json:"predictedMax"`
}

// SubmitPrediction crée la prédiction de la semaine courante, ou édite
// l'existante si l'utilisateur en a déjà une (une seule par user et par
// semaine). Chaque soumission fige le multiplicateur du jour et ajoute une
// entrée au journal de révisions.
func SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	// Le sujet de la prédiction est toujours l'utilisateur de la session
	if req.UserID != "" && req.UserID != user.ID {
		utils.Error(w, http.StatusForbidden, "cannot submit a prediction for another user")
		return
	}

	if req.PredictedMin == 0 || req.PredictedMax == 0 {
		utils.Error(w, http.StatusBadRequest, "Missing required fields: predictedMin and predictedMax")
		return
	}

	ctx := context.Background()

	// Politique de fourchette, validée contre le prix courant avant toute écriture
	currentPrice := stockService.CurrentPrice(ctx)
	if err := scoring.ValidateRange(req.PredictedMin, req.PredictedMax, currentPrice); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	weekStart, weekEnd := utils.WeekWindowFor(now)
	multiplier := scoring.DayMultiplier(now)

	existing, err := findPrediction(ctx, user.ID, weekStart)
	if err != nil && err != pgx.ErrNoRows {
		utils.Error(w, http.StatusInternalServerError, "could not look up prediction: "+err.Error())
		return
	}

	if existing != nil {
		updated, status, msg := revisePrediction(ctx, existing, req.PredictedMin, req.PredictedMax, multiplier)
		if updated == nil {
			utils.Error(w, status, msg)
			return
		}
		utils.Success(w, updated)
		return
	}

	var id string
	err = database.DB.QueryRow(ctx,
		`INSERT INTO predictions(user_id, username, predicted_min, predicted_max,
		 	week_start_date, week_end_date, day_multiplier, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		 RETURNING id`,
		user.ID, user.Username, req.PredictedMin, req.PredictedMax,
		weekStart, weekEnd, multiplier,
	).Scan(&id)

	if isUniqueViolation(err) {
		// Création concurrente perdue : rejouer en édition
		existing, err = findPrediction(ctx, user.ID, weekStart)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not look up prediction: "+err.Error())
			return
		}
		updated, status, msg := revisePrediction(ctx, existing, req.PredictedMin, req.PredictedMax, multiplier)
		if updated == nil {
			utils.Error(w, status, msg)
			return
		}
		utils.Success(w, updated)
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create prediction: "+err.Error())
		return
	}

	if err := appendRevision(ctx, id, req.PredictedMin, req.PredictedMax, multiplier); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not record revision: "+err.Error())
		return
	}

	created, err := loadPredictionWithHistory(ctx, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch created prediction: "+err.Error())
		return
	}

	utils.Created(w, created)
}

// UpdatePrediction édite une prédiction par son id. Refusé hors de la
// semaine courante, et refusé (409) une fois la prédiction settled.
func UpdatePrediction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PredictionID string  `json:"predictionId"`
		PredictedMin float64 `json:"predictedMin"`
		PredictedMax float64 `json:"predictedMax"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.PredictionID == "" || req.PredictedMin == 0 || req.PredictedMax == 0 {
		utils.Error(w, http.StatusBadRequest, "Missing required fields: predictionId, predictedMin, and predictedMax")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT `+scanner.PredictionColumns+` FROM predictions WHERE id=$1`,
		req.PredictionID,
	)
	prediction, err := scanner.ScanPrediction(row)
	if err == pgx.ErrNoRows {
		utils.Error(w, http.StatusNotFound, "Prediction not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch prediction: "+err.Error())
		return
	}

	if prediction.UserID != user.ID {
		utils.Error(w, http.StatusForbidden, "cannot edit another user's prediction")
		return
	}

	now := time.Now()
	weekStart, _ := utils.WeekWindowFor(now)
	if !prediction.WeekStartDate.Equal(weekStart) {
		utils.Error(w, http.StatusBadRequest, "Can only edit current week's prediction")
		return
	}

	currentPrice := stockService.CurrentPrice(ctx)
	if err := scoring.ValidateRange(req.PredictedMin, req.PredictedMax, currentPrice); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, status, msg := revisePrediction(ctx, prediction, req.PredictedMin, req.PredictedMax, scoring.DayMultiplier(now))
	if updated == nil {
		utils.Error(w, status, msg)
		return
	}

	utils.Success(w, updated)
}

// GetPredictions retourne les prédictions de la semaine courante d'un
// utilisateur, journal de révisions inclus
func GetPredictions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	ctx := context.Background()
	weekStart, _ := utils.WeekWindowFor(time.Now())

	rows, err := database.DB.Query(ctx,
		`SELECT `+scanner.PredictionColumns+`
		 FROM predictions
		 WHERE user_id=$1 AND week_start_date >= $2
		 ORDER BY week_start_date DESC`,
		userID, weekStart,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query predictions: "+err.Error())
		return
	}

	predictions, err := scanner.CollectPredictions(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read predictions: "+err.Error())
		return
	}

	for i := range predictions {
		history, err := loadRevisions(ctx, predictions[i].ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load revision log: "+err.Error())
			return
		}
		predictions[i].History = history
	}

	utils.Success(w, predictions)
}

// GetAllPredictions retourne la prédiction de chaque joueur pour la semaine
// courante (une par user grâce à la contrainte d'unicité), limitée à 100
func GetAllPredictions(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()
	weekStart, _ := utils.WeekWindowFor(time.Now())

	rows, err := database.DB.Query(ctx,
		`SELECT `+scanner.PredictionColumns+`
		 FROM predictions
		 WHERE week_start_date >= $1
		 ORDER BY created_at DESC
		 LIMIT 100`,
		weekStart,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query predictions: "+err.Error())
		return
	}

	predictions, err := scanner.CollectPredictions(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read predictions: "+err.Error())
		return
	}

	utils.Success(w, predictions)
}

// GetPredictionRevisions retourne le journal de révisions d'une prédiction
func GetPredictionRevisions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	predictionID := vars["id"]

	ctx := context.Background()

	var exists bool
	err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM predictions WHERE id=$1)`, predictionID,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check prediction: "+err.Error())
		return
	}
	if !exists {
		utils.Error(w, http.StatusNotFound, "Prediction not found")
		return
	}

	history, err := loadRevisions(ctx, predictionID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load revision log: "+err.Error())
		return
	}

	utils.Success(w, history)
}

// isUniqueViolation détecte la perte d'une course de création : un autre
// POST a déjà inséré la ligne (user, semaine), la contrainte d'unicité a
// rejeté celui-ci
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// findPrediction cherche la prédiction d'un utilisateur pour une semaine
// (bornes canoniques de utils.WeekWindowFor)
func findPrediction(ctx context.Context, userID string, weekStart time.Time) (*model.Prediction, error) {
	row := database.DB.QueryRow(ctx,
		`SELECT `+scanner.PredictionColumns+`
		 FROM predictions WHERE user_id=$1 AND week_start_date=$2`,
		userID, weekStart,
	)
	return scanner.ScanPrediction(row)
}

// revisePrediction applique une édition : refuse si settled (terminal),
// sinon met à jour la fourchette, refige le multiplicateur, purge l'ancien
// champ "prix unique" et ajoute l'entrée au journal de révisions
func revisePrediction(ctx context.Context, p *model.Prediction, min, max float64, multiplier int) (*model.Prediction, int, string) {
	if p.IsSettled() {
		return nil, http.StatusConflict, "Cannot edit prediction after results are available"
	}

	_, err := database.DB.Exec(ctx,
		`UPDATE predictions
		 SET predicted_min=$1, predicted_max=$2, day_multiplier=$3, predicted_price=NULL, updated_at=NOW()
		 WHERE id=$4 AND actual_price IS NULL`,
		min, max, multiplier, p.ID,
	)
	if err != nil {
		return nil, http.StatusInternalServerError, "could not update prediction: " + err.Error()
	}

	if err := appendRevision(ctx, p.ID, min, max, multiplier); err != nil {
		return nil, http.StatusInternalServerError, "could not record revision: " + err.Error()
	}

	updated, err := loadPredictionWithHistory(ctx, p.ID)
	if err != nil {
		return nil, http.StatusInternalServerError, "could not fetch updated prediction: " + err.Error()
	}

	return updated, 0, ""
}

// appendRevision ajoute une entrée au journal (append-only, jamais modifié)
func appendRevision(ctx context.Context, predictionID string, min, max float64, multiplier int) error {
	_, err := database.DB.Exec(ctx,
		`INSERT INTO prediction_revisions(prediction_id, predicted_min, predicted_max, day_multiplier, created_at)
		 VALUES($1, $2, $3, $4, NOW())`,
		predictionID, min, max, multiplier,
	)
	return err
}

func loadRevisions(ctx context.Context, predictionID string) ([]model.RevisionEntry, error) {
	rows, err := database.DB.Query(ctx,
		`SELECT predicted_min, predicted_max, day_multiplier, created_at
		 FROM prediction_revisions
		 WHERE prediction_id=$1
		 ORDER BY created_at ASC, id ASC`,
		predictionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []model.RevisionEntry{}
	for rows.Next() {
		entry, err := scanner.ScanRevision(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, *entry)
	}

	return history, rows.Err()
}

func loadPredictionWithHistory(ctx context.Context, id string) (*model.Prediction, error) {
	row := database.DB.QueryRow(ctx,
		`SELECT `+scanner.PredictionColumns+` FROM predictions WHERE id=$1`, id,
	)
	p, err := scanner.ScanPrediction(row)
	if err != nil {
		return nil, err
	}

	p.History, err = loadRevisions(ctx, id)
	if err != nil {
		return nil, err
	}

	return p, nil
}
