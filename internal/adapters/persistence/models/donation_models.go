package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Donation Tables
// ============================================================

// Donation represents donations table (scrap pickup requests)
type Donation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	DonorID     uint           `gorm:"not null;index" json:"donor_id"`
	DealerID    *uint          `gorm:"index" json:"dealer_id"`
	ScrapType   string         `gorm:"size:50;not null" json:"scrap_type"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PickupDate  time.Time      `gorm:"type:date;not null" json:"pickup_date"`
	PickupTime  string         `gorm:"size:10" json:"pickup_time"`
	Address     string         `gorm:"type:text;not null" json:"address"`
	City        string         `gorm:"size:100;index" json:"city"`
	Price       *float64       `gorm:"type:decimal(10,2)" json:"price"`
	Weight      *float64       `gorm:"type:decimal(10,2)" json:"weight"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Donor       *User           `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Dealer      *User           `gorm:"foreignKey:DealerID" json:"dealer,omitempty"`
	Images      []DonationImage `gorm:"foreignKey:DonationID" json:"images,omitempty"`
	ActivityLog []ActivityLog   `gorm:"foreignKey:DonationID" json:"activity_log,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

// DonationResponse DTO
type DonationResponse struct {
	ID          uint                  `json:"id"`
	DonorID     uint                  `json:"donor_id"`
	DonorName   string                `json:"donor_name,omitempty"`
	DonorPhone  string                `json:"donor_phone,omitempty"`
	DealerID    *uint                 `json:"dealer_id"`
	DealerName  string                `json:"dealer_name,omitempty"`
	ScrapType   string                `json:"scrap_type"`
	Description string                `json:"description"`
	Status      string                `json:"status"`
	PickupDate  string                `json:"pickup_date"`
	PickupTime  string                `json:"pickup_time"`
	Address     string                `json:"address"`
	City        string                `json:"city"`
	Price       *float64              `json:"price"`
	Weight      *float64              `json:"weight"`
	Images      []string              `json:"images"`
	ActivityLog []ActivityLogResponse `json:"activity_log,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func (d *Donation) ToResponse() *DonationResponse {
	resp := &DonationResponse{
		ID:          d.ID,
		DonorID:     d.DonorID,
		DealerID:    d.DealerID,
		ScrapType:   d.ScrapType,
		Description: d.Description,
		Status:      d.Status,
		PickupDate:  d.PickupDate.Format("2006-01-02"),
		PickupTime:  d.PickupTime,
		Address:     d.Address,
		City:        d.City,
		Price:       d.Price,
		Weight:      d.Weight,
		Images:      make([]string, 0, len(d.Images)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}

	if d.Donor != nil {
		resp.DonorName = d.Donor.Name
		resp.DonorPhone = d.Donor.Phone
	}
	if d.Dealer != nil {
		resp.DealerName = d.Dealer.Name
	}
	for _, img := range d.Images {
		resp.Images = append(resp.Images, img.ImagePath)
	}
	for _, entry := range d.ActivityLog {
		resp.ActivityLog = append(resp.ActivityLog, *entry.ToResponse())
	}

	return resp
}

// DonationImage represents donation_images table
type DonationImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DonationID uint      `gorm:"not null;index" json:"donation_id"`
	ImagePath  string    `gorm:"size:255;not null" json:"image_path"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DonationImage) TableName() string {
	return "donation_images"
}

// ActivityLog represents activity_logs table.
// Append-only; one row per donation lifecycle event, written by the service
// layer alongside the status change.
type ActivityLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DonationID  uint      `gorm:"not null;index" json:"donation_id"`
	Action      string    `gorm:"size:30;not null" json:"action"`
	Note        string    `gorm:"type:text" json:"note"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ActivityLogResponse DTO
type ActivityLogResponse struct {
	Action    string    `json:"action"`
	Note      string    `json:"note"`
	Performer string    `json:"performer,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *ActivityLog) ToResponse() *ActivityLogResponse {
	resp := &ActivityLogResponse{
		Action:    a.Action,
		Note:      a.Note,
		Timestamp: a.CreatedAt,
	}
	if a.Performer != nil {
		resp.Performer = a.Performer.Name
	}
	return resp
}

// Activity log actions
const (
	LogActionCreated   = "created"
	LogActionAssigned  = "assigned"
	LogActionAccepted  = "accepted"
	LogActionPickedUp  = "picked-up"
	LogActionDonated   = "donated"
	LogActionRejected  = "rejected"
	LogActionCancelled = "cancelled"
	LogActionProcessed = "processed"
	LogActionRecycled  = "recycled"
)
