// errors классифицирует отказы и стандартизирует ответы об ошибках HTTP-слоя.
//
// На вход принимается любая ошибка из конвейера запроса (типизированная
// *Error, сентинелы storage/token/hasher, ошибки декодирования), на выход:
//   - HTTP-статус из фиксированной таблицы политик;
//   - короткий стабильный code и безопасное message без внутренних деталей.
//
// Детали (op, исходная ошибка) попадают только в лог запроса.
package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	logctx "github.com/pribylovaa/go-qa-service/internal/pkg/log"
)

// APIError — единый формат для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

var errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "qa",
	Subsystem: "http",
	Name:      "errors_total",
	Help:      "Classified HTTP error responses by kind.",
}, []string{"kind"})

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
func ToHTTP(err error) (int, ErrorResponse) {
	p := PolicyFor(Classify(err))

	return p.Status, ErrorResponse{
		Error: APIError{
			Code:    p.Code,
			Message: p.Message,
		},
	}
}

// WriteError — хелпер для хендлеров и мидлваров: классифицирует err,
// пишет запись в лог запроса с уровнем политики и отдаёт JSON-ответ.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := Classify(err)
	p := PolicyFor(kind)

	attrs := []slog.Attr{
		slog.String("kind", kind.String()),
		slog.Int("status", p.Status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
	}

	logctx.From(r.Context()).LogAttrs(r.Context(), p.Level, "request_failed", attrs...)
	errorsTotal.WithLabelValues(kind.String()).Inc()

	resp := ErrorResponse{
		Error: APIError{
			Code:      p.Code,
			Message:   p.Message,
			RequestID: r.Header.Get("X-Request-Id"),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(resp)
}

// NotFound — обработчик для маршрутов без совпадений.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, E(KindRouteNotFound, "http.router", nil))
}

// MethodNotAllowed отвечает так же, как NotFound: неподдерживаемый метод
// неотличим для клиента от отсутствующего маршрута.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NotFound(w, r)
}
