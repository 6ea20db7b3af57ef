package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/domain"
	"scrapseva/internal/pkg/pagination"
	"scrapseva/internal/pkg/timeline"

	"gorm.io/gorm"
)

var (
	ErrDealerNotFound      = errors.New("dealer not found or not active")
	ErrDonationNotEditable = errors.New("donation can no longer be edited")
	ErrNotDonationOwner    = errors.New("donation does not belong to this user")
	ErrNotAssignedDealer   = errors.New("donation is not assigned to this dealer")
	ErrPriceWeightRequired = errors.New("price and weight are required to mark a donation as donated")
)

// DonationService handles the scrap donation lifecycle
type DonationService struct {
	donationRepo repositories.DonationRepository
	userRepo     repositories.UserRepository
	notifier     Notifier
}

// NewDonationService creates a new donation service
func NewDonationService(donationRepo repositories.DonationRepository, userRepo repositories.UserRepository, notifier Notifier) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

// CreateDonationInput carries a new pickup request
type CreateDonationInput struct {
	ScrapType   string   `json:"scrapType"`
	Description string   `json:"description"`
	PickupDate  string   `json:"pickupDate"` // YYYY-MM-DD
	PickupTime  string   `json:"pickupTime"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Images      []string `json:"-"` // stored paths, filled by the upload handler
}

// DonatedInput carries the weighing result required to close a pickup
type DonatedInput struct {
	Price  float64 `json:"price"`
	Weight float64 `json:"weight"`
}

// ListDonationsInput narrows donation listings per caller role
type ListDonationsInput struct {
	Status   string
	City     string
	Search   string
	DonorID  *uint
	DealerID *uint
}

// Create registers a new pickup request for a donor
func (s *DonationService) Create(ctx context.Context, donorID uint, input *CreateDonationInput) (*models.DonationResponse, error) {
	pickupDate, err := time.Parse("2006-01-02", input.PickupDate)
	if err != nil {
		return nil, fmt.Errorf("invalid pickup date: %w", err)
	}

	donation := &models.Donation{
		DonorID:     donorID,
		ScrapType:   input.ScrapType,
		Description: input.Description,
		Status:      string(domain.DonationPending),
		PickupDate:  pickupDate,
		PickupTime:  input.PickupTime,
		Address:     input.Address,
		City:        input.City,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	for _, path := range input.Images {
		img := &models.DonationImage{DonationID: donation.ID, ImagePath: path}
		if err := s.donationRepo.AddImage(ctx, img); err != nil {
			log.Printf("⚠️ Failed to attach image to donation %d: %v", donation.ID, err)
		}
	}

	s.appendLog(ctx, donation.ID, models.LogActionCreated, "Pickup request placed", donorID)

	log.Printf("✅ Donation %d created by donor %d", donation.ID, donorID)

	return donation.ToResponse(), nil
}

// List returns donations matching the filter, with pagination metadata
func (s *DonationService) List(ctx context.Context, input *ListDonationsInput, params *pagination.Params) ([]*models.DonationResponse, *pagination.Meta, error) {
	filter := &repositories.DonationFilter{
		Status:   input.Status,
		City:     input.City,
		Search:   input.Search,
		DonorID:  input.DonorID,
		DealerID: input.DealerID,
		Offset:   params.Offset,
		Limit:    params.Limit,
	}

	donations, total, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*models.DonationResponse, 0, len(donations))
	for _, d := range donations {
		responses = append(responses, d.ToResponse())
	}

	return responses, pagination.GetMeta(params, total), nil
}

// DonationDetail bundles a donation with its projected lifecycle timeline
type DonationDetail struct {
	Donation *models.DonationResponse `json:"donation"`
	Timeline []timeline.Entry         `json:"timeline"`
}

// GetDetail returns a donation with its activity log projected onto the
// expected step list
func (s *DonationService) GetDetail(ctx context.Context, id uint) (*DonationDetail, error) {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return nil, err
	}

	events := make([]timeline.Event, 0, len(donation.ActivityLog))
	for _, entry := range donation.ActivityLog {
		events = append(events, timeline.Event{
			Code:      entry.Action,
			Note:      entry.Note,
			Timestamp: entry.CreatedAt,
		})
	}

	return &DonationDetail{
		Donation: donation.ToResponse(),
		Timeline: timeline.Project(timeline.DonationSteps, events),
	}, nil
}

// AssignDealer moves a pending donation to assigned with the given dealer
func (s *DonationService) AssignDealer(ctx context.Context, donationID, dealerID, adminID uint) (*models.DonationResponse, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}

	dealer, err := s.userRepo.GetByID(ctx, dealerID)
	if err != nil || dealer.Role != string(domain.RoleDealer) || !dealer.IsActive {
		return nil, ErrDealerNotFound
	}

	if err := s.transition(donation, domain.DonationAssigned); err != nil {
		return nil, err
	}
	donation.DealerID = &dealerID

	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, err
	}

	s.appendLog(ctx, donation.ID, models.LogActionAssigned, "Assigned to "+dealer.Name, adminID)
	s.notifier.SendToUser(dealerID, "New pickup assigned",
		fmt.Sprintf("A %s pickup in %s has been assigned to you", donation.ScrapType, donation.City),
		map[string]string{"type": "donation_assigned", "donation_id": fmt.Sprint(donation.ID)})
	s.notifyDonor(donation, "Dealer assigned", "A dealer has been assigned to your pickup request")

	return donation.ToResponse(), nil
}

// Accept records the dealer's acknowledgment of an assignment. The status
// stays assigned; pickup is the next edge.
func (s *DonationService) Accept(ctx context.Context, donationID, dealerID uint) (*models.DonationResponse, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.DealerID == nil || *donation.DealerID != dealerID {
		return nil, ErrNotAssignedDealer
	}
	if donation.Status != string(domain.DonationAssigned) {
		return nil, fmt.Errorf("%w: cannot accept a donation in status %s", domain.ErrInvalidTransition, donation.Status)
	}

	s.appendLog(ctx, donation.ID, models.LogActionAccepted, "Dealer accepted the pickup", dealerID)
	s.notifyDonor(donation, "Pickup confirmed", "Your dealer confirmed the pickup")

	return donation.ToResponse(), nil
}

// Reject declines a pending donation
func (s *DonationService) Reject(ctx context.Context, donationID, actorID uint, note string) (*models.DonationResponse, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(donation, domain.DonationRejected); err != nil {
		return nil, err
	}
	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, err
	}

	s.appendLog(ctx, donation.ID, models.LogActionRejected, note, actorID)
	s.notifyDonor(donation, "Pickup request rejected", "Your pickup request could not be accepted")

	return donation.ToResponse(), nil
}

// Cancel lets the donor withdraw a donation before pickup
func (s *DonationService) Cancel(ctx context.Context, donationID, donorID uint) (*models.DonationResponse, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.DonorID != donorID {
		return nil, ErrNotDonationOwner
	}

	if err := s.transition(donation, domain.DonationCancelled); err != nil {
		return nil, err
	}
	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, err
	}

	s.appendLog(ctx, donation.ID, models.LogActionCancelled, "Cancelled by donor", donorID)

	if donation.DealerID != nil {
		s.notifier.SendToUser(*donation.DealerID, "Pickup cancelled",
			fmt.Sprintf("The %s pickup in %s was cancelled by the donor", donation.ScrapType, donation.City),
			map[string]string{"type": "donation_cancelled", "donation_id": fmt.Sprint(donation.ID)})
	}

	return donation.ToResponse(), nil
}

// Unassign sends an assigned donation back to the pending pool. Used when a
// dealer declines an assignment.
func (s *DonationService) Unassign(ctx context.Context, donationID, dealerID uint, note string) (*models.DonationResponse, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.DealerID == nil || *donation.DealerID != dealerID {
		return nil, ErrNotAssignedDealer
	}

	if err := s.transition(donation, domain.DonationPending); err != nil {
		return nil, err
	}
	donation.DealerID = nil

	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, err
	}

	if note == "" {
		note = "Dealer declined the assignment"
	}
	s.appendLog(ctx, donation.ID, models.LogActionRejected, note, dealerID)
	s.notifyDonor(donation, "Pickup reassignment", "Your pickup request is waiting for a new dealer")

	return donation.ToResponse(), nil
}

// MarkPickedUp records that the assigned dealer collected the scrap
func (s *DonationService) MarkPickedUp(ctx context.Context, donationID, dealerID uint) (*models.DonationResponse, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.DealerID == nil || *donation.DealerID != dealerID {
		return nil, ErrNotAssignedDealer
	}

	if err := s.transition(donation, domain.DonationPickedUp); err != nil {
		return nil, err
	}
	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, err
	}

	s.appendLog(ctx, donation.ID, models.LogActionPickedUp, "Scrap collected", dealerID)
	s.notifyDonor(donation, "Scrap picked up", "Your scrap has been collected")

	return donation.ToResponse(), nil
}

// MarkDonated records the weighing result and closes the pickup. Price and
// weight must both be positive; the state machine refuses the edge otherwise.
// asDealer restricts the call to the assigned dealer; admins pass false.
func (s *DonationService) MarkDonated(ctx context.Context, donationID, actorID uint, asDealer bool, input *DonatedInput) (*models.DonationResponse, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if asDealer && (donation.DealerID == nil || *donation.DealerID != actorID) {
		return nil, ErrNotAssignedDealer
	}

	if input.Price <= 0 || input.Weight <= 0 {
		return nil, ErrPriceWeightRequired
	}

	if err := s.transition(donation, domain.DonationDonated); err != nil {
		return nil, err
	}
	donation.Price = &input.Price
	donation.Weight = &input.Weight

	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("%.2f kg valued at ₹%.2f", input.Weight, input.Price)
	s.appendLog(ctx, donation.ID, models.LogActionDonated, note, actorID)
	s.notifyDonor(donation, "Donation complete", "Thank you! Your scrap donation has been recorded")

	return donation.ToResponse(), nil
}

// MarkProcessed records that the collected scrap entered processing
func (s *DonationService) MarkProcessed(ctx context.Context, donationID, actorID uint) (*models.DonationResponse, error) {
	return s.advance(ctx, donationID, actorID, domain.DonationProcessed, models.LogActionProcessed, "Scrap sent for processing")
}

// MarkRecycled records the terminal recycled state
func (s *DonationService) MarkRecycled(ctx context.Context, donationID, actorID uint) (*models.DonationResponse, error) {
	return s.advance(ctx, donationID, actorID, domain.DonationRecycled, models.LogActionRecycled, "Scrap recycled")
}

// advance applies a simple forward transition with a log entry
func (s *DonationService) advance(ctx context.Context, donationID, actorID uint, to domain.DonationStatus, action, note string) (*models.DonationResponse, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(donation, to); err != nil {
		return nil, err
	}
	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, err
	}

	s.appendLog(ctx, donation.ID, action, note, actorID)

	return donation.ToResponse(), nil
}

func (s *DonationService) getDonation(ctx context.Context, id uint) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	return donation, nil
}

// transition validates the status edge and applies it in memory
func (s *DonationService) transition(donation *models.Donation, to domain.DonationStatus) error {
	from := domain.DonationStatus(donation.Status)
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	donation.Status = string(to)
	return nil
}

func (s *DonationService) appendLog(ctx context.Context, donationID uint, action, note string, actorID uint) {
	entry := &models.ActivityLog{
		DonationID:  donationID,
		Action:      action,
		Note:        note,
		PerformedBy: actorID,
	}
	if err := s.donationRepo.AppendLog(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to append activity log for donation %d: %v", donationID, err)
	}
}

func (s *DonationService) notifyDonor(donation *models.Donation, title, body string) {
	s.notifier.SendToUser(donation.DonorID, title, body, map[string]string{
		"type":        "donation_update",
		"donation_id": fmt.Sprint(donation.ID),
		"status":      donation.Status,
	})
}
