package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/models"
)

type questionRequest struct {
	Title   string   `json:"title" mod:"trim" validate:"required,max=255"`
	Content string   `json:"content" mod:"trim" validate:"required"`
	Tags    []string `json:"tags" mod:"dive,trim" validate:"omitempty,dive,required"`
}

func (q questionRequest) toModel() models.NewQuestion {
	return models.NewQuestion{Title: q.Title, Content: q.Content, Tags: q.Tags}
}

func (h *Handlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := parsePagination(r.URL.Query())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	qs, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if qs == nil {
		qs = []models.Question{}
	}

	writeJSON(w, http.StatusOK, qs)
}

func (h *Handlers) AddQuestion(w http.ResponseWriter, r *http.Request) {
	acc, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in questionRequest
	if err := bind(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q, err := h.svc.AddQuestion(r.Context(), acc, in.toModel())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

func (h *Handlers) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	acc, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in questionRequest
	if err := bind(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q, err := h.svc.UpdateQuestion(r.Context(), acc, id, in.toModel())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	acc, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteQuestion(r.Context(), acc, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
