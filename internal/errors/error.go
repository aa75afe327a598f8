package errors

import stderrors "errors"

// Error — типизированная ошибка с категорией. Создаётся в точке отказа
// и потребляется классификатором на краю HTTP-слоя.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E конструирует *Error.
func E(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is позволяет сравнивать по категории: errors.Is(err, &Error{Kind: KindWrongSecret}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf возвращает категорию ближайшего *Error в цепочке.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}

	return KindRouteNotFound, false
}
