package search

import "errors"

// Ошибки верхнего уровня при обращении к OpenSearch.
// Отсутствующие данные в ответе ошибкой не считаются - их
// закрывает нормализатор значениями по умолчанию.
var (
	// ErrUpstreamUnavailable - не удалось достучаться до OpenSearch
	// (сеть, таймаут)
	ErrUpstreamUnavailable = errors.New("opensearch unavailable")

	// ErrQueryRejected - OpenSearch вернул не-успешный статус на запрос
	ErrQueryRejected = errors.New("opensearch rejected query")

	// ErrMalformedResponse - тело ответа не разобрать
	ErrMalformedResponse = errors.New("malformed opensearch response")
)
