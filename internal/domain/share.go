package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareGrant — факт выдачи доступа к сущности по email получателя.
// Список получателей на самой сущности (SharedWith) дедуплицируется,
// журнал грантов хранит каждую выдачу.
type ShareGrant struct {
	ID         uuid.UUID `json:"id"`
	EntityUUID uuid.UUID `json:"entity_uuid"`
	OwnerID    string    `json:"owner_id"`
	Recipient  string    `json:"recipient"`
	CreatedAt  time.Time `json:"created_at"`
}

type SharedResource struct {
	Grant  *ShareGrant `json:"grant"`
	Entity *Entity     `json:"entity"`
}
