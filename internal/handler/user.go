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
	"github.com/lfmelo/stockboard/internal/middleware"
	"github.com/lfmelo/stockboard/internal/model"
	"github.com/lfmelo/stockboard/internal/repository"
	"github.com/lfmelo/stockboard/internal/utils"
)

// Registered users choose a password of at least this many characters when
// changing it. Registration predates the rule and is not retroactive.
const minPasswordLen = 6

// UserHandler serves the profile, preference and password endpoints for
// the authenticated account. The account is always resolved from the
// identity the gate attached, never from a client-supplied id.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, users UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type profileUpdateReq struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type passwordChangeReq struct {
	SenhaAtual         string `json:"senhaAtual"`
	NovaSenha          string `json:"novaSenha"`
	ConfirmarNovaSenha string `json:"confirmarNovaSenha"`
}

type preferencesReq struct {
	Theme                *string `json:"theme"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
}

// List returns every account's public fields.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accounts, err := h.Users.List(ctx)
	if err != nil {
		log.Printf("users: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}
	out := make([]userPart, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, userPart{ID: a.ID, Name: a.Name, Email: a.Email})
	}
	return c.JSON(http.StatusOK, out)
}

// Profile returns the caller's profile with preference defaults applied.
func (h *UserHandler) Profile(c echo.Context) error {
	uid, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Não autenticado"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acc, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuário não encontrado."})
		}
		log.Printf("profile: lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":                   acc.ID,
		"nome":                 acc.Name,
		"email":                acc.Email,
		"theme":                acc.ThemeOrDefault(),
		"notificationsEnabled": acc.NotificationsOrDefault(),
	})
}

// UpdateProfile changes the caller's display name and email. The email
// stays unique: a value already used by another account is rejected, both
// by the pre-check and by the unique index when two edits race.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Não autenticado"})
	}

	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requisição inválida"})
	}
	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.TrimSpace(req.Email)
	if req.Nome == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Nome e email são obrigatórios."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	taken, err := h.Users.EmailTakenByOther(ctx, req.Email, uid)
	if err != nil {
		log.Printf("profile: email check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Este email já está em uso por outra conta."})
	}

	if err := h.Users.UpdateProfile(ctx, uid, req.Nome, req.Email); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Este email já está em uso por outra conta."})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuário não encontrado para atualização."})
		}
		log.Printf("profile: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Perfil atualizado com sucesso!",
		"user":    userPart{ID: uid, Name: req.Nome, Email: req.Email},
	})
}

// UpdatePassword re-verifies the current password and rotates the stored
// hash. Session tokens issued before the change stay valid until they
// expire; there is no revocation store.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	uid, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Não autenticado"})
	}

	var req passwordChangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requisição inválida"})
	}
	switch {
	case req.SenhaAtual == "" || req.NovaSenha == "" || req.ConfirmarNovaSenha == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Todos os campos de senha são obrigatórios."})
	case req.NovaSenha != req.ConfirmarNovaSenha:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "As novas senhas não coincidem."})
	case len(req.NovaSenha) < minPasswordLen:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "A nova senha deve ter pelo menos 6 caracteres."})
	case req.NovaSenha == req.SenhaAtual:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "A nova senha não pode ser igual à senha atual."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acc, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuário não encontrado."})
		}
		log.Printf("password: lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	if !utils.VerifyPassword(acc.PasswordHash, req.SenhaAtual) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Senha atual incorreta."})
	}

	hash, err := utils.HashPassword(req.NovaSenha, h.Cfg.BcryptCost)
	if err != nil {
		log.Printf("password: hash failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}
	if err := h.Users.UpdatePassword(ctx, uid, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuário não encontrado."})
		}
		log.Printf("password: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Senha alterada com sucesso!"})
}

// UpdatePreferences applies a partial preference change. Only fields
// explicitly present in the body are touched.
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	uid, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Não autenticado"})
	}

	var req preferencesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requisição inválida"})
	}

	update := model.PreferenceUpdate{NotificationsEnabled: req.NotificationsEnabled}
	if req.Theme != nil {
		if !model.ValidTheme(*req.Theme) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Valor de tema inválido."})
		}
		update.Theme = req.Theme
	}
	if update.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Nenhuma preferência válida para atualizar."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdatePreferences(ctx, uid, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuário não encontrado para atualizar preferências."})
		}
		log.Printf("preferences: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erro interno do servidor"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Preferências atualizadas com sucesso!"})
}
