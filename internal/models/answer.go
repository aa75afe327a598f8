package models

// Answer — ответ на вопрос QuestionID.
type Answer struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	QuestionID int64  `json:"question_id"`
}

// NewAnswer — данные для создания ответа.
type NewAnswer struct {
	Content    string `json:"content"`
	QuestionID int64  `json:"question_id"`
}
