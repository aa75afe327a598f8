package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/models"
)

type answerRequest struct {
	Content    string `json:"content" mod:"trim" validate:"required"`
	QuestionID int64  `json:"question_id" validate:"required,gt=0"`
}

type answerUpdateRequest struct {
	Content string `json:"content" mod:"trim" validate:"required"`
}

// ListAnswers — GET /questions/{id}/answers.
func (h *Handlers) ListAnswers(w http.ResponseWriter, r *http.Request) {
	qid, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := parsePagination(r.URL.Query())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	as, err := h.svc.ListAnswers(r.Context(), qid, page)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if as == nil {
		as = []models.Answer{}
	}

	writeJSON(w, http.StatusOK, as)
}

func (h *Handlers) AddAnswer(w http.ResponseWriter, r *http.Request) {
	acc, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in answerRequest
	if err := bind(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	a, err := h.svc.AddAnswer(r.Context(), acc, models.NewAnswer{Content: in.Content, QuestionID: in.QuestionID})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
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

	var in answerUpdateRequest
	if err := bind(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	a, err := h.svc.UpdateAnswer(r.Context(), acc, id, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.DeleteAnswer(r.Context(), acc, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
