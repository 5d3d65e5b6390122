package scanner

import (
	"database/sql"

	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
)

// rowScanner couvre pgx.Row et pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Rows couvre l'itération pgx.Rows, pour CollectPredictions
type Rows interface {
	rowScanner
	Next() bool
	Err() error
	Close()
}

// PredictionColumns est la liste de colonnes attendue par ScanPrediction,
// à utiliser telle quelle dans les SELECT
const PredictionColumns = `id, user_id, username, predicted_min, predicted_max, predicted_price,
	week_start_date, week_end_date, actual_price, is_correct, score, range_size, day_multiplier,
	created_at, updated_at`

// ScanPrediction scanne une ligne SQL vers une Prediction
func ScanPrediction(s rowScanner) (*model.Prediction, error) {
	var p model.Prediction
	var predictedMin, predictedMax, predictedPrice, actualPrice, rangeSize sql.NullFloat64
	var isCorrect sql.NullBool
	var score, dayMultiplier sql.NullInt64

	err := s.Scan(
		&p.ID, &p.UserID, &p.Username, &predictedMin, &predictedMax, &predictedPrice,
		&p.WeekStartDate, &p.WeekEndDate, &actualPrice, &isCorrect, &score, &rangeSize, &dayMultiplier,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.PredictedMin = utils.NullFloat64ToPointer(predictedMin)
	p.PredictedMax = utils.NullFloat64ToPointer(predictedMax)
	p.PredictedPrice = utils.NullFloat64ToPointer(predictedPrice)
	p.ActualPrice = utils.NullFloat64ToPointer(actualPrice)
	p.IsCorrect = utils.NullBoolToPointer(isCorrect)
	p.Score = utils.NullInt64ToPointer(score)
	p.RangeSize = utils.NullFloat64ToPointer(rangeSize)
	p.DayMultiplier = utils.NullInt64ToPointer(dayMultiplier)

	return &p, nil
}

// CollectPredictions scanne toutes les lignes d'un résultat et vérifie
// l'erreur d'itération : un résultat tronqué en cours de lecture doit
// échouer, jamais passer pour un batch complet
func CollectPredictions(rows Rows) ([]model.Prediction, error) {
	defer rows.Close()

	predictions := []model.Prediction{}
	for rows.Next() {
		p, err := ScanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return predictions, nil
}

// ScanRevision scanne une entrée du journal de révisions
func ScanRevision(s rowScanner) (*model.RevisionEntry, error) {
	var r model.RevisionEntry
	if err := s.Scan(&r.PredictedMin, &r.PredictedMax, &r.DayMultiplier, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// UserColumns est la liste de colonnes attendue par ScanUser
const UserColumns = `id, username, email, name, image, twitter_id, provider, is_admin,
	last_login, created_at, updated_at`

// ScanUser scanne une ligne SQL vers un UserProfile
func ScanUser(s rowScanner) (*model.UserProfile, error) {
	var u model.UserProfile
	var email, name, image, twitterID sql.NullString
	var lastLogin sql.NullTime

	err := s.Scan(
		&u.ID, &u.Username, &email, &name, &image, &twitterID, &u.Provider, &u.IsAdmin,
		&lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Email = utils.NullStringToString(email)
	u.Name = utils.NullStringToString(name)
	u.Image = utils.NullStringToString(image)
	u.TwitterID = utils.NullStringToString(twitterID)
	u.LastLogin = utils.NullTimeToTime(lastLogin)

	return &u, nil
}
