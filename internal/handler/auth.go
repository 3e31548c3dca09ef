package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lfmelo/stockboard/internal/config"
	"github.com/lfmelo/stockboard/internal/queue"
	"github.com/lfmelo/stockboard/internal/repository"
	"github.com/lfmelo/stockboard/internal/utils"
)

// AuthHandler bundles dependencies for the registration and login endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Events EventPublisher
}

func NewAuthHandler(cfg config.Config, users UserStore, events EventPublisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Events: events}
}

// ----- DTOs -----

type registerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Register creates an account. The pre-insert existence check gives a
// friendly 409; the unique index on email remains the authoritative guard,
// so a concurrent duplicate insert maps to the same 409.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requisição inválida"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Todos os campos são obrigatórios"})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "As senhas não coincidem"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		log.Printf("register: hash failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Usuário com este email já existe"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("register: lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	id, err := h.Users.Create(ctx, req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost the race against a concurrent registration.
			return c.JSON(http.StatusConflict, echo.Map{"message": "Usuário com este email já existe"})
		}
		log.Printf("register: insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	h.publishRegistered(id, req.Name, req.Email)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Usuário criado com sucesso",
		"user":    userPart{ID: id, Name: req.Name},
	})
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same response so the endpoint cannot be used
// to probe which emails are registered; the distinction is only logged.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requisição inválida"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email e senha são obrigatórios"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acc, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("login: unknown email")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Credenciais inválidas"})
		}
		log.Printf("login: lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}
	if !utils.VerifyPassword(acc.PasswordHash, req.Password) {
		log.Printf("login: wrong password for account %d", acc.ID)
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Credenciais inválidas"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, acc.ID, acc.Name, h.Cfg.TokenTTL())
	if err != nil {
		log.Printf("login: token issue failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login bem-sucedido",
		"token":   tok.Token,
		"user":    userPart{ID: acc.ID, Name: acc.Name, Email: acc.Email},
	})
}

// publishRegistered fires the registration event without blocking the
// response; the request context may be gone by the time the broker answers.
func (h *AuthHandler) publishRegistered(id uint64, name, email string) {
	if h.Events == nil {
		return
	}
	evt := queue.UserRegisteredEvent{
		UserID:       id,
		Name:         name,
		Email:        email,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Events.UserRegistered(ctx, evt)
	}()
}
