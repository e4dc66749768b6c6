package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementType classifies a movement as income or expense.
type MovementType string

const (
	MovementIncome  MovementType = "INCOME"
	MovementExpense MovementType = "EXPENSE"
)

// Valid reports whether t is one of the known movement types.
func (t MovementType) Valid() bool {
	return t == MovementIncome || t == MovementExpense
}

// Movement represents a single income or expense transaction attributed to
// a user. Deletes are hard deletes; the user FK restricts deletion of users
// that still own movements.
type Movement struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Concept   string          `json:"concept" gorm:"size:255;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Type      MovementType    `json:"type" gorm:"type:varchar(10);not null;index"`
	Date      time.Time       `json:"date" gorm:"not null;index"`
	UserID    uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// BeforeCreate sets UUID and defaults the date to the creation time.
func (m *Movement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
	return nil
}
