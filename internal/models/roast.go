package models

import (
	"time"

	"github.com/google/uuid"
)

type Roast struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"productName"`
	Text        string    `json:"roastText"`
	CreatedAt   time.Time `json:"createdAt"`
}
