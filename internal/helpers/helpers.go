package helpers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/joshua-takyi/eventhub/internal/models"
)

const (
	// MaxImageDimension bounds the longer side of re-encoded event images.
	MaxImageDimension = 1600
	imageQuality      = 85
)

var (
	ErrImageTooLarge = &models.ValidationError{Field: "image", Message: "Image must be less than 5MB"}
	ErrNotAnImage    = &models.ValidationError{Field: "image", Message: "Please upload an image file"}
)

var (
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasNumber  = regexp.MustCompile(`\d`)
	hasSpecial = regexp.MustCompile(`[^a-zA-Z\d]`)
)

var strengthLabels = [...]string{"", "Weak", "Fair", "Good", "Strong"}

type PasswordStrength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// Percent is the width of the strength meter.
func (s PasswordStrength) Percent() int {
	return s.Score * 25
}

// CheckPasswordStrength scores one point each for length >= 8, mixed case, a
// digit and a special character. A score of zero has no label.
func CheckPasswordStrength(password string) PasswordStrength {
	score := 0
	if len(password) >= 8 {
		score++
	}
	if hasLower.MatchString(password) && hasUpper.MatchString(password) {
		score++
	}
	if hasNumber.MatchString(password) {
		score++
	}
	if hasSpecial.MatchString(password) {
		score++
	}
	return PasswordStrength{Score: score, Label: strengthLabels[score]}
}

// IsOrganizer reports whether user organizes event.
func IsOrganizer(user *models.User, event *models.Event) bool {
	if user == nil || event == nil || user.ID == "" {
		return false
	}
	return event.OrganizerID() == user.ID
}

// ProcessImage checks an uploaded event image and re-encodes it as a JPEG
// data URL, scaled down to MaxImageDimension.
func ProcessImage(r io.Reader, size int64, contentType string) (string, error) {
	if size > models.MaxImageSize {
		return "", ErrImageTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	raw, err := io.ReadAll(io.LimitReader(r, models.MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(raw) > models.MaxImageSize {
		return "", ErrImageTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrNotAnImage
	}
	b := img.Bounds()
	if b.Dx() > MaxImageDimension || b.Dy() > MaxImageDimension {
		img = imaging.Fit(img, MaxImageDimension, MaxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(imageQuality)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// SafeRedirect keeps post-login redirects on this site.
func SafeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
