package lead

import (
	"time"

	"github.com/google/uuid"
)

// Status has no enforced transition order; any value may replace any other.
type Status string

const (
	StatusHot  Status = "HOT"
	StatusWarm Status = "WARM"
	StatusCold Status = "COLD"
)

type Lead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     *string   `gorm:"size:255" json:"email"`
	Phone     *string   `gorm:"size:50" json:"phone"`
	Status    Status    `gorm:"type:varchar(10);not null;default:WARM" json:"status"`
	CNPJ      *string   `gorm:"size:20;column:cnpj" json:"cnpj"`
	CPF       *string   `gorm:"size:20;column:cpf" json:"cpf"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Lead) TableName() string {
	return "leads"
}
