package handler

import (
	"net/http"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "Tesla Prediction Game API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/login", "description": "Connexion invité (pseudo + PIN)"},
				{"method": "POST", "path": "/auth/register", "description": "Inscription invité"},
				{"method": "POST", "path": "/auth/check", "description": "Vérifier un pseudo existant"},
				{"method": "POST", "path": "/auth/reset-password", "description": "Réinitialiser le PIN (pseudo + email)"},
				{"method": "POST", "path": "/auth/x-login", "description": "Connexion via X/Twitter"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion"},
			},
			"predictions": []map[string]string{
				{"method": "POST", "path": "/predictions", "description": "Soumettre ou éditer la prédiction de la semaine"},
				{"method": "PUT", "path": "/predictions", "description": "Éditer une prédiction par ID"},
				{"method": "GET", "path": "/predictions?userId=", "description": "Prédictions d'un utilisateur (semaine courante)"},
				{"method": "GET", "path": "/predictions/all", "description": "Prédictions de tous les joueurs (semaine courante)"},
				{"method": "GET", "path": "/predictions/{id}/revisions", "description": "Journal de révisions d'une prédiction"},
				{"method": "POST", "path": "/predictions/calculate-scores", "description": "Règlement de la semaine (vendredi après 20h UTC)"},
				{"method": "POST", "path": "/predictions/reset", "description": "Supprimer la semaine courante (admin)"},
				{"method": "POST", "path": "/predictions/cleanup", "description": "Migrer les prédictions legacy (admin)"},
				{"method": "GET", "path": "/predictions/debug", "description": "État brut de la semaine courante (admin)"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général (param: limit)"},
			},
			"stock": []map[string]string{
				{"method": "GET", "path": "/stock", "description": "Dernier cours TSLA"},
				{"method": "GET", "path": "/stock/weekly", "description": "Cours de début et fin de semaine"},
			},
			"insights": []map[string]string{
				{"method": "POST", "path": "/insights", "description": "Analyse des catalystes de la semaine"},
				{"method": "POST", "path": "/insights/refresh", "description": "Forcer la régénération (admin)"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users", "description": "Récupérer tous les joueurs"},
				{"method": "GET", "path": "/users/{id}", "description": "Récupérer un joueur par ID"},
				{"method": "POST", "path": "/users/{id}/avatar", "description": "Upload avatar utilisateur"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
	}

	utils.Success(w, routes)
}
