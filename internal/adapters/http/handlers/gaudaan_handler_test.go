package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGaudaanRepo serves one gaudaan; the detail path only reads
type stubGaudaanRepo struct{ gaudaan *models.Gaudaan }

func (s *stubGaudaanRepo) Create(ctx context.Context, g *models.Gaudaan) error { return nil }

func (s *stubGaudaanRepo) GetByID(ctx context.Context, id uint) (*models.Gaudaan, error) {
	return s.gaudaan, nil
}

func (s *stubGaudaanRepo) Update(ctx context.Context, g *models.Gaudaan) error { return nil }

func (s *stubGaudaanRepo) List(ctx context.Context, f *repositories.GaudaanFilter) ([]*models.Gaudaan, int64, error) {
	return nil, 0, nil
}

func (s *stubGaudaanRepo) AppendHistory(ctx context.Context, e *models.GaudaanStatusHistory) error {
	return nil
}

func newGaudaanDetailApp(gaudaan *models.Gaudaan, userID uint, role string) *fiber.App {
	svc := services.NewGaudaanService(&stubGaudaanRepo{gaudaan: gaudaan}, stubUserRepo{}, nil, silentNotifier{})
	h := NewGaudaanHandler(svc)

	app := fiber.New()
	app.Get("/gaudaan/:id", func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}, h.GetDetail)
	return app
}

func TestGaudaanDetailScopedToAssignedVolunteer(t *testing.T) {
	gaudaan := &models.Gaudaan{ID: 3, DonorID: 2, VolunteerID: uintPtr(4), Status: "assigned"}

	// Another volunteer cannot read it
	res, err := newGaudaanDetailApp(gaudaan, 6, "VOLUNTEER").Test(httptest.NewRequest("GET", "/gaudaan/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)

	// The assigned volunteer can
	res, err = newGaudaanDetailApp(gaudaan, 4, "VOLUNTEER").Test(httptest.NewRequest("GET", "/gaudaan/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestGaudaanDetailUnassignedHiddenFromVolunteers(t *testing.T) {
	gaudaan := &models.Gaudaan{ID: 3, DonorID: 2, Status: "unassigned"}

	res, err := newGaudaanDetailApp(gaudaan, 4, "VOLUNTEER").Test(httptest.NewRequest("GET", "/gaudaan/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
}

func TestGaudaanDetailScopedToDonor(t *testing.T) {
	gaudaan := &models.Gaudaan{ID: 3, DonorID: 2, Status: "unassigned"}

	res, err := newGaudaanDetailApp(gaudaan, 5, "USER").Test(httptest.NewRequest("GET", "/gaudaan/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)

	res, err = newGaudaanDetailApp(gaudaan, 2, "USER").Test(httptest.NewRequest("GET", "/gaudaan/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
