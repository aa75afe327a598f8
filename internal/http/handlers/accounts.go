package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/models"
)

// credentialsRequest — тело /registration и /login.
// Пустой пароль отклоняется хэшером (регистрация) или даёт wrong_secret (вход).
type credentialsRequest struct {
	Email    string `json:"email" mod:"trim,lcase" validate:"required,email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email" mod:"trim,lcase" validate:"required,email"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type registrationResponse struct {
	Account models.AccountInfo `json:"account"`
	Token   string             `json:"token"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := bind(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	info, tok, err := h.svc.Register(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registrationResponse{Account: info, Token: tok})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := bind(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	tok, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: tok})
}

func (h *Handlers) AccountInfo(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	info, err := h.svc.AccountInfo(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in emailRequest
	if err := bind(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	info, err := h.svc.UpdateAccount(r.Context(), id, in.Email)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in passwordRequest
	if err := bind(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.UpdatePassword(r.Context(), id, in.Password); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
