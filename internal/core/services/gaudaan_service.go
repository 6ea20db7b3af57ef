package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/domain"
	"scrapseva/internal/pkg/pagination"
	"scrapseva/internal/pkg/timeline"

	"gorm.io/gorm"
)

var (
	ErrVolunteerNotFound    = errors.New("volunteer not found or not active")
	ErrNotAssignedVolunteer = errors.New("gaudaan is not assigned to this volunteer")
	ErrShelterRequired      = errors.New("a shelter is required before the animal reaches shelter")
	ErrStatusNotAllowed     = errors.New("volunteers may only mark picked_up, shelter or dropped")
)

// GaudaanService handles the animal-donation lifecycle
type GaudaanService struct {
	gaudaanRepo repositories.GaudaanRepository
	userRepo    repositories.UserRepository
	shelterRepo *repositories.ShelterRepository
	notifier    Notifier
}

// NewGaudaanService creates a new gaudaan service
func NewGaudaanService(
	gaudaanRepo repositories.GaudaanRepository,
	userRepo repositories.UserRepository,
	shelterRepo *repositories.ShelterRepository,
	notifier Notifier,
) *GaudaanService {
	return &GaudaanService{
		gaudaanRepo: gaudaanRepo,
		userRepo:    userRepo,
		shelterRepo: shelterRepo,
		notifier:    notifier,
	}
}

// CreateGaudaanInput carries a new animal-donation request
type CreateGaudaanInput struct {
	AnimalType  string `json:"animalType"`
	AnimalCount int    `json:"animalCount"`
	Condition   string `json:"condition"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

// ListGaudaanInput narrows gaudaan listings per caller role
type ListGaudaanInput struct {
	Status      string
	City        string
	DonorID     *uint
	VolunteerID *uint
}

// Create registers a new animal-donation request
func (s *GaudaanService) Create(ctx context.Context, donorID uint, input *CreateGaudaanInput) (*models.GaudaanResponse, error) {
	count := input.AnimalCount
	if count < 1 {
		count = 1
	}

	gaudaan := &models.Gaudaan{
		DonorID:     donorID,
		AnimalType:  input.AnimalType,
		AnimalCount: count,
		Condition:   input.Condition,
		Status:      string(domain.GaudaanUnassigned),
		Address:     input.Address,
		City:        input.City,
	}

	if err := s.gaudaanRepo.Create(ctx, gaudaan); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, gaudaan.ID, string(domain.GaudaanUnassigned), "Request placed", donorID)

	log.Printf("✅ Gaudaan %d created by donor %d", gaudaan.ID, donorID)

	return gaudaan.ToResponse(), nil
}

// List returns gaudaan requests matching the filter
func (s *GaudaanService) List(ctx context.Context, input *ListGaudaanInput, params *pagination.Params) ([]*models.GaudaanResponse, *pagination.Meta, error) {
	filter := &repositories.GaudaanFilter{
		Status:      input.Status,
		City:        input.City,
		DonorID:     input.DonorID,
		VolunteerID: input.VolunteerID,
		Offset:      params.Offset,
		Limit:       params.Limit,
	}

	gaudaans, total, err := s.gaudaanRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*models.GaudaanResponse, 0, len(gaudaans))
	for _, g := range gaudaans {
		responses = append(responses, g.ToResponse())
	}

	return responses, pagination.GetMeta(params, total), nil
}

// GaudaanDetail bundles a gaudaan with its projected lifecycle timeline
type GaudaanDetail struct {
	Gaudaan  *models.GaudaanResponse `json:"gaudaan"`
	Timeline []timeline.Entry        `json:"timeline"`
}

// GetDetail returns a gaudaan with its status history projected onto the
// expected step list
func (s *GaudaanService) GetDetail(ctx context.Context, id uint) (*GaudaanDetail, error) {
	gaudaan, err := s.getGaudaan(ctx, id)
	if err != nil {
		return nil, err
	}

	events := make([]timeline.Event, 0, len(gaudaan.StatusHistory))
	for _, entry := range gaudaan.StatusHistory {
		events = append(events, timeline.Event{
			Code:      entry.Status,
			Note:      entry.Note,
			Timestamp: entry.CreatedAt,
		})
	}

	return &GaudaanDetail{
		Gaudaan:  gaudaan.ToResponse(),
		Timeline: timeline.Project(timeline.GaudaanSteps, events),
	}, nil
}

// AssignVolunteer moves an unassigned gaudaan to assigned. A target shelter
// may be set at assignment time.
func (s *GaudaanService) AssignVolunteer(ctx context.Context, gaudaanID, volunteerID uint, shelterID *uint, adminID uint) (*models.GaudaanResponse, error) {
	gaudaan, err := s.getGaudaan(ctx, gaudaanID)
	if err != nil {
		return nil, err
	}

	volunteer, err := s.userRepo.GetByID(ctx, volunteerID)
	if err != nil || volunteer.Role != string(domain.RoleVolunteer) || !volunteer.IsActive {
		return nil, ErrVolunteerNotFound
	}

	if shelterID != nil {
		if _, err := s.shelterRepo.GetByID(ctx, *shelterID); err != nil {
			return nil, domain.ErrShelterNotFound
		}
	}

	if err := s.transition(gaudaan, domain.GaudaanAssigned); err != nil {
		return nil, err
	}
	gaudaan.VolunteerID = &volunteerID
	gaudaan.ShelterID = shelterID

	if err := s.gaudaanRepo.Update(ctx, gaudaan); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, gaudaan.ID, string(domain.GaudaanAssigned), "Assigned to "+volunteer.Name, adminID)
	s.notifier.SendToUser(volunteerID, "New rescue assigned",
		fmt.Sprintf("A %s rescue in %s has been assigned to you", gaudaan.AnimalType, gaudaan.City),
		map[string]string{"type": "gaudaan_assigned", "gaudaan_id": fmt.Sprint(gaudaan.ID)})
	s.notifyDonor(gaudaan, "Volunteer assigned", "A volunteer has been assigned to your request")

	return gaudaan.ToResponse(), nil
}

// Reject declines a gaudaan request
func (s *GaudaanService) Reject(ctx context.Context, gaudaanID, actorID uint, note string) (*models.GaudaanResponse, error) {
	gaudaan, err := s.getGaudaan(ctx, gaudaanID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(gaudaan, domain.GaudaanRejected); err != nil {
		return nil, err
	}
	if err := s.gaudaanRepo.Update(ctx, gaudaan); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, gaudaan.ID, string(domain.GaudaanRejected), note, actorID)
	s.notifyDonor(gaudaan, "Request rejected", "Your animal donation request could not be accepted")

	return gaudaan.ToResponse(), nil
}

// UpdateStatus walks the gaudaan forward for the assigned volunteer.
// Only picked_up, shelter and dropped come through here; shelter requires
// a shelter to already be set (or passed now). Giving the rescue back goes
// through Unassign, rejection stays with the admin.
func (s *GaudaanService) UpdateStatus(ctx context.Context, gaudaanID, volunteerID uint, status string, shelterID *uint, note string) (*models.GaudaanResponse, error) {
	target := domain.GaudaanStatus(status)
	switch target {
	case domain.GaudaanPickedUp, domain.GaudaanShelter, domain.GaudaanDropped:
	default:
		return nil, ErrStatusNotAllowed
	}

	gaudaan, err := s.getGaudaan(ctx, gaudaanID)
	if err != nil {
		return nil, err
	}
	if gaudaan.VolunteerID == nil || *gaudaan.VolunteerID != volunteerID {
		return nil, ErrNotAssignedVolunteer
	}

	if shelterID != nil {
		if _, err := s.shelterRepo.GetByID(ctx, *shelterID); err != nil {
			return nil, domain.ErrShelterNotFound
		}
		gaudaan.ShelterID = shelterID
	}
	if target == domain.GaudaanShelter && gaudaan.ShelterID == nil {
		return nil, ErrShelterRequired
	}

	if err := s.transition(gaudaan, target); err != nil {
		return nil, err
	}

	if err := s.gaudaanRepo.Update(ctx, gaudaan); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, gaudaan.ID, string(target), note, volunteerID)
	s.notifyDonor(gaudaan, "Rescue update", fmt.Sprintf("Your animal donation is now %s", target))

	return gaudaan.ToResponse(), nil
}

// Unassign lets the assigned volunteer give the rescue back to the pool
func (s *GaudaanService) Unassign(ctx context.Context, gaudaanID, volunteerID uint, note string) (*models.GaudaanResponse, error) {
	gaudaan, err := s.getGaudaan(ctx, gaudaanID)
	if err != nil {
		return nil, err
	}
	if gaudaan.VolunteerID == nil || *gaudaan.VolunteerID != volunteerID {
		return nil, ErrNotAssignedVolunteer
	}

	if err := s.transition(gaudaan, domain.GaudaanUnassigned); err != nil {
		return nil, err
	}
	gaudaan.VolunteerID = nil

	if err := s.gaudaanRepo.Update(ctx, gaudaan); err != nil {
		return nil, err
	}

	if note == "" {
		note = "Returned by volunteer"
	}
	s.appendHistory(ctx, gaudaan.ID, string(domain.GaudaanUnassigned), note, volunteerID)
	s.notifyDonor(gaudaan, "Rescue update", "Your request is waiting for a new volunteer")

	return gaudaan.ToResponse(), nil
}

func (s *GaudaanService) getGaudaan(ctx context.Context, id uint) (*models.Gaudaan, error) {
	gaudaan, err := s.gaudaanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGaudaanNotFound
		}
		return nil, err
	}
	return gaudaan, nil
}

// transition validates the status edge and applies it in memory
func (s *GaudaanService) transition(gaudaan *models.Gaudaan, to domain.GaudaanStatus) error {
	from := domain.GaudaanStatus(gaudaan.Status)
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	gaudaan.Status = string(to)
	return nil
}

func (s *GaudaanService) appendHistory(ctx context.Context, gaudaanID uint, status, note string, actorID uint) {
	entry := &models.GaudaanStatusHistory{
		GaudaanID:   gaudaanID,
		Status:      status,
		Note:        note,
		PerformedBy: actorID,
	}
	if err := s.gaudaanRepo.AppendHistory(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to append status history for gaudaan %d: %v", gaudaanID, err)
	}
}

func (s *GaudaanService) notifyDonor(gaudaan *models.Gaudaan, title, body string) {
	s.notifier.SendToUser(gaudaan.DonorID, title, body, map[string]string{
		"type":       "gaudaan_update",
		"gaudaan_id": fmt.Sprint(gaudaan.ID),
		"status":     gaudaan.Status,
	})
}
