package domain

import "time"

// ChangeType - вид изменения объекта портфеля.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// PropertyChangedEvent публикуется после успешной записи в хранилище.
// Для удаления Property не заполняется.
type PropertyChangedEvent struct {
	Type       ChangeType
	PropertyID int64
	Property   *Property
	OccurredAt time.Time
}
