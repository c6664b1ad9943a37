package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vitrina/mq"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
)

// Login exchanges the demo credentials for a token. Wrong credentials are a
// 401 with a message, not a server fault.
func (s *Store) LoginHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := s.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, ErrBusy) {
			utils.RespondWithError(w, http.StatusTooManyRequests, "Login already in progress")
			return
		}
		log.Println("Login error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if !result.OK {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	mq.Emit(r.Context(), "user-loggedin", mq.Event{
		EntityType: "session",
		Action:     "login",
		UserID:     result.User.UserID,
	})

	utils.SendResponse(w, http.StatusOK, utils.M{
		"token": result.Token,
		"user":  result.User,
	}, "Login successful", nil)
}

// Register creates a fresh demo identity and authenticates it immediately.
func (s *Store) RegisterHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	result, err := s.Register(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"error":  "Invalid input",
				"fields": verr.Fields,
			})
			return
		}
		if errors.Is(err, ErrBusy) {
			utils.RespondWithError(w, http.StatusTooManyRequests, "Registration already in progress")
			return
		}
		log.Println("Register error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	mq.Emit(r.Context(), "user-registered", mq.Event{
		EntityType: "session",
		Action:     "register",
		UserID:     result.User.UserID,
	})

	utils.SendResponse(w, http.StatusCreated, utils.M{
		"token": result.Token,
		"user":  result.User,
	}, "Registration successful", nil)
}

// Logout clears the session. Always succeeds.
func (s *Store) LogoutHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s.Logout(userID)

	mq.Emit(r.Context(), "user-loggedout", mq.Event{
		EntityType: "session",
		Action:     "logout",
		UserID:     userID,
	})

	utils.SendResponse(w, http.StatusOK, nil, "User logged out", nil)
}

// GetSession reports the caller's authentication context.
func (s *Store) GetSessionHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s.Session(r.Context(), userID))
}
