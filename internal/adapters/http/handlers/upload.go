package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"scrapseva/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	errFileTooLarge  = errors.New("file exceeds the maximum upload size")
	errBadFileType   = errors.New("unsupported file type")
	allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
)

// saveImage validates and stores an uploaded image under the upload dir,
// returning the public path to store in the database.
func saveImage(c *fiber.Ctx, file *multipart.FileHeader, cfg *config.Config, subdir string) (string, error) {
	maxBytes := int64(cfg.Upload.MaxSizeMB) * 1024 * 1024
	if file.Size > maxBytes {
		return "", errFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errBadFileType
	}

	dir := filepath.Join(cfg.Upload.Dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", cfg.Upload.PublicPath, subdir, name), nil
}
