package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"scrapseva/internal/config"
	"scrapseva/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartBody builds a multipart form with a single file field
func multipartBody(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("not really an image"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func decodeResponse(t *testing.T, r io.Reader) response.Response {
	t.Helper()

	var resp response.Response
	require.NoError(t, json.NewDecoder(r).Decode(&resp))
	return resp
}

func newUploadLogoApp(cfg *config.Config) *fiber.App {
	h := NewAdminHandler(nil, nil, nil, nil, nil, cfg)

	app := fiber.New()
	app.Post("/admin/logos", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		c.Locals("role", "ADMIN")
		return c.Next()
	}, h.UploadLogo)
	return app
}

func TestUploadLogoReadsLogoField(t *testing.T) {
	cfg := &config.Config{Upload: config.UploadConfig{Dir: t.TempDir(), MaxSizeMB: 5, PublicPath: "/uploads"}}
	app := newUploadLogoApp(cfg)

	// The upload form names the file "logo"; any other field is rejected
	body, contentType := multipartBody(t, "image", "partner.png")
	req := httptest.NewRequest("POST", "/admin/logos", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "logo file is required", decodeResponse(t, res.Body).Error)
}

func TestUploadLogoRejectsBadExtension(t *testing.T) {
	cfg := &config.Config{Upload: config.UploadConfig{Dir: t.TempDir(), MaxSizeMB: 5, PublicPath: "/uploads"}}
	app := newUploadLogoApp(cfg)

	// A file under the right field reaches the image validator
	body, contentType := multipartBody(t, "logo", "partner.txt")
	req := httptest.NewRequest("POST", "/admin/logos", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Only jpg, jpeg, png and webp files are allowed", decodeResponse(t, res.Body).Error)
}
