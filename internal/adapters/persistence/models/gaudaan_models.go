package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Gaudaan Tables (animal-donation / rescue requests)
// ============================================================

// Gaudaan represents gaudaans table
type Gaudaan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	DonorID     uint           `gorm:"not null;index" json:"donor_id"`
	VolunteerID *uint          `gorm:"index" json:"volunteer_id"`
	ShelterID   *uint          `gorm:"index" json:"shelter_id"`
	AnimalType  string         `gorm:"size:50;not null" json:"animal_type"`
	AnimalCount int            `gorm:"default:1" json:"animal_count"`
	Condition   string         `gorm:"type:text" json:"condition"`
	Status      string         `gorm:"size:20;not null;default:'unassigned';index" json:"status"`
	Address     string         `gorm:"type:text;not null" json:"address"`
	City        string         `gorm:"size:100;index" json:"city"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Donor         *User                  `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Volunteer     *User                  `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
	Shelter       *Shelter               `gorm:"foreignKey:ShelterID" json:"shelter,omitempty"`
	StatusHistory []GaudaanStatusHistory `gorm:"foreignKey:GaudaanID" json:"status_history,omitempty"`
}

func (Gaudaan) TableName() string {
	return "gaudaans"
}

// GaudaanResponse DTO
type GaudaanResponse struct {
	ID            uint                    `json:"id"`
	DonorID       uint                    `json:"donor_id"`
	DonorName     string                  `json:"donor_name,omitempty"`
	DonorPhone    string                  `json:"donor_phone,omitempty"`
	VolunteerID   *uint                   `json:"volunteer_id"`
	VolunteerName string                  `json:"volunteer_name,omitempty"`
	ShelterID     *uint                   `json:"shelter_id"`
	ShelterName   string                  `json:"shelter_name,omitempty"`
	AnimalType    string                  `json:"animal_type"`
	AnimalCount   int                     `json:"animal_count"`
	Condition     string                  `json:"condition"`
	Status        string                  `json:"status"`
	Address       string                  `json:"address"`
	City          string                  `json:"city"`
	StatusHistory []GaudaanStatusResponse `json:"status_history,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

func (g *Gaudaan) ToResponse() *GaudaanResponse {
	resp := &GaudaanResponse{
		ID:          g.ID,
		DonorID:     g.DonorID,
		VolunteerID: g.VolunteerID,
		ShelterID:   g.ShelterID,
		AnimalType:  g.AnimalType,
		AnimalCount: g.AnimalCount,
		Condition:   g.Condition,
		Status:      g.Status,
		Address:     g.Address,
		City:        g.City,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}

	if g.Donor != nil {
		resp.DonorName = g.Donor.Name
		resp.DonorPhone = g.Donor.Phone
	}
	if g.Volunteer != nil {
		resp.VolunteerName = g.Volunteer.Name
	}
	if g.Shelter != nil {
		resp.ShelterName = g.Shelter.Name
	}
	for _, entry := range g.StatusHistory {
		resp.StatusHistory = append(resp.StatusHistory, *entry.ToResponse())
	}

	return resp
}

// GaudaanStatusHistory represents gaudaan_status_histories table.
// Append-only; one row per status change.
type GaudaanStatusHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GaudaanID   uint      `gorm:"not null;index" json:"gaudaan_id"`
	Status      string    `gorm:"size:20;not null" json:"status"`
	Note        string    `gorm:"type:text" json:"note"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (GaudaanStatusHistory) TableName() string {
	return "gaudaan_status_histories"
}

// GaudaanStatusResponse DTO
type GaudaanStatusResponse struct {
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	Performer string    `json:"performer,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *GaudaanStatusHistory) ToResponse() *GaudaanStatusResponse {
	resp := &GaudaanStatusResponse{
		Status:    h.Status,
		Note:      h.Note,
		Timestamp: h.CreatedAt,
	}
	if h.Performer != nil {
		resp.Performer = h.Performer.Name
	}
	return resp
}
