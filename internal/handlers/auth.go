package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/authz"
	"github.com/vollink/vollink-api/internal/config"
	"github.com/vollink/vollink-api/internal/models"
	"github.com/vollink/vollink-api/internal/repository"
)

const tokenTTL = 24 * time.Hour

var validate = validator.New()

type AuthHandler struct {
	volunteers    repository.VolunteerRepository
	organizations repository.OrganizationRepository
	jwtSecret     string
	logger        zerolog.Logger
}

type volunteerSignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
}

type organizationSignupRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ActorID   string `json:"actor_id"`
	ActorType string `json:"actor_type"`
}

func NewAuthHandler(db *sql.DB, cfg *config.Config, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		volunteers:    repository.NewVolunteerRepository(db),
		organizations: repository.NewOrganizationRepository(db),
		jwtSecret:     cfg.JWTSecret,
		logger:        logger.With().Str("handler", "auth").Logger(),
	}
}

func (h *AuthHandler) VolunteerSignUp(w http.ResponseWriter, r *http.Request) {
	var req volunteerSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Invalid signup request: "+err.Error(), http.StatusBadRequest)
		return
	}

	volunteer, err := h.volunteers.Create(r.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		h.logger.Error().Err(err).Msg("failed to create volunteer")
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, volunteer)
}

func (h *AuthHandler) VolunteerLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	volunteer, err := h.volunteers.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.Error().Err(err).Msg("volunteer login failed")
		http.Error(w, "Authentication failed", http.StatusInternalServerError)
		return
	}

	h.issueToken(w, volunteer.ID, models.ActorTypeVolunteer)
}

func (h *AuthHandler) OrganizationSignUp(w http.ResponseWriter, r *http.Request) {
	var req organizationSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Invalid signup request: "+err.Error(), http.StatusBadRequest)
		return
	}

	org, err := h.organizations.Create(r.Context(), req.Name, req.Email, req.Password, req.Description, req.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		h.logger.Error().Err(err).Msg("failed to create organization")
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, org)
}

func (h *AuthHandler) OrganizationLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	org, err := h.organizations.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.Error().Err(err).Msg("organization login failed")
		http.Error(w, "Authentication failed", http.StatusInternalServerError)
		return
	}

	h.issueToken(w, org.ID, models.ActorTypeOrganization)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, actorID string, actorType models.ActorType) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": actorID,
		"typ": string(actorType),
		"exp": time.Now().Add(tokenTTL).Unix(),
	})
	tokenString, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to sign token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     tokenString,
		ActorID:   actorID,
		ActorType: string(actorType),
	})
}

func (h *AuthHandler) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}
		tokenString := parts[1]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !claims.VerifyExpiresAt(time.Now().Unix(), true) {
			http.Error(w, "Token expired", http.StatusUnauthorized)
			return
		}

		actorID, _ := claims["sub"].(string)
		rawType, _ := claims["typ"].(string)
		actorType := models.ActorType(rawType)
		if actorID == "" || !models.IsValidActorType(actorType) {
			http.Error(w, "Missing token claim", http.StatusUnauthorized)
			return
		}

		ctx := authz.WithIdentity(r.Context(), actorID, actorType)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
