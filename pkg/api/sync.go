package api

import (
	"fmt"
	"strings"
)

// Пути REST API
const (
	RestPrefix = "/rest/v1/"
	HealthPath = "/health"
)

// TablePath возвращает путь к коллекции таблицы
func TablePath(table string) string {
	return RestPrefix + table
}

// HealthResponse представляет ответ health-check
type HealthResponse struct {
	Status string `json:"status"`
}

// Filter операторы, которые понимает сервер
const (
	OpEq  = "eq"
	OpGte = "gte"
)

// Filter представляет условие вида column=op.value
type Filter struct {
	Op    string
	Value string
}

// ParseFilter разбирает значение query-параметра "op.value"
func ParseFilter(raw string) (Filter, error) {
	op, value, ok := strings.Cut(raw, ".")
	if !ok {
		return Filter{}, fmt.Errorf("malformed filter %q", raw)
	}
	switch op {
	case OpEq, OpGte:
		return Filter{Op: op, Value: value}, nil
	default:
		return Filter{}, fmt.Errorf("unsupported filter operator %q", op)
	}
}

// String собирает фильтр обратно в "op.value"
func (f Filter) String() string {
	return f.Op + "." + f.Value
}
