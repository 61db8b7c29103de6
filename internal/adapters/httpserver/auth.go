package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"futuresjournal/internal/domain"
	"futuresjournal/internal/ports"
)

type contextKey string

const userIDKey contextKey = "userID"

// userIDFrom returns the authenticated user ID stored by the middleware.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

type authHandlers struct {
	users    ports.UserRepository
	log      ports.Logger
	secret   []byte
	tokenTTL time.Duration
}

func newAuthHandlers(users ports.UserRepository, log ports.Logger, secret string, tokenTTL time.Duration) *authHandlers {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &authHandlers{users: users, log: log, secret: []byte(secret), tokenTTL: tokenTTL}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Subscription string `json:"subscription"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Subscription: string(u.Subscription),
	}
}

func (h *authHandlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeMessage(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 6 {
		writeMessage(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	existing, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error(r.Context(), err, "Signup lookup failed")
		writeError(w, err)
		return
	}
	if existing != nil {
		writeMessage(w, http.StatusBadRequest, "user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error(r.Context(), err, "Password hashing failed")
		writeMessage(w, http.StatusInternalServerError, "error creating user")
		return
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Subscription: domain.TierFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		h.log.Error(r.Context(), err, "User creation failed", map[string]interface{}{"email": req.Email})
		writeError(w, err)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.log.Error(r.Context(), err, "Token issuance failed")
		writeMessage(w, http.StatusInternalServerError, "error creating user")
		return
	}
	h.log.Info(r.Context(), "User signed up", map[string]interface{}{"userID": user.ID})
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
}

func (h *authHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error(r.Context(), err, "Login lookup failed")
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, ports.ErrInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, ports.ErrInvalidCredentials)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.log.Error(r.Context(), err, "Token issuance failed")
		writeMessage(w, http.StatusInternalServerError, "error logging in")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

func (h *authHandlers) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *authHandlers) handleCurrentSubscription(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"subscription": string(user.Subscription)})
}

func (h *authHandlers) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subscription string `json:"subscription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tier := domain.SubscriptionTier(req.Subscription)
	if !tier.IsValid() {
		writeMessage(w, http.StatusBadRequest, "invalid subscription type")
		return
	}

	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user.Subscription = tier
	user.UpdatedAt = time.Now().UTC()
	if err := h.users.UpdateUser(r.Context(), user); err != nil {
		h.log.Error(r.Context(), err, "Subscription update failed", map[string]interface{}{"userID": user.ID})
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":      "subscription updated successfully",
		"subscription": string(user.Subscription),
	})
}

func (h *authHandlers) currentUser(r *http.Request) (*domain.User, error) {
	user, err := h.users.FindUserByID(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ports.ErrNotFound
	}
	return user, nil
}

func (h *authHandlers) issueToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// authenticate validates the bearer token and stores the user ID in the
// request context.
func (h *authHandlers) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, ports.ErrInvalidToken)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ports.ErrInvalidToken
			}
			return h.secret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			writeError(w, ports.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
