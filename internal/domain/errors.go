package domain

import "errors"

// Ошибки уровня модели. Все они восстановимы на границе UI
// и никогда не должны завершать процесс.
var (
	ErrNotFound         = errors.New("entity not found")
	ErrInvalidName      = errors.New("invalid name")
	ErrCycleDetected    = errors.New("cycle detected")
	ErrCorruptHierarchy = errors.New("corrupt hierarchy")
)
