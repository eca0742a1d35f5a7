package tracking

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"thunder-cargo/internal/captcha"

	"github.com/gofiber/fiber/v2"
)

type PublicTrackRequest struct {
	CargoID     string `json:"cargo_id"`
	ChallengeID string `json:"challenge_id"`
	Answer      Answer `json:"answer"`
}

// Answer kabul eder: "7" ya da 7. Diğer JSON değerleri ham metin olarak kalır
// ve doğrulamada yanlış cevap sayılır.
type Answer string

func (a *Answer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Answer(s)
		return nil
	}
	if string(b) == "null" {
		*a = ""
		return nil
	}
	*a = Answer(b)
	return nil
}

// PublicTrackResponse her zaman bir sonraki sorgu için yeni soruyu taşır.
type PublicTrackResponse struct {
	Error     string             `json:"error,omitempty"`
	Shipment  *View              `json:"shipment,omitempty"`
	Challenge *captcha.Challenge `json:"challenge,omitempty"`
}

// ----------------------------------------
// HERKESE AÇIK KARGO TAKİP
// POST /api/public/track
// ----------------------------------------

func PublicTrackHandler(gate *captcha.Gate, svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PublicTrackRequest
		if err := c.BodyParser(&body); err != nil {
			// Okunabilen challenge_id yine de harcanır, cevap boş sayılır
			next, verr := gate.Verify(c.UserContext(), body.ChallengeID, "")
			if !errors.Is(verr, captcha.ErrVerificationFailed) {
				return verr
			}
			return c.Status(fiber.StatusBadRequest).JSON(PublicTrackResponse{
				Error:     "Invalid request body",
				Challenge: &next,
			})
		}

		// 1. Güvenlik sorusu: sorgudan önce, her istekte
		next, err := gate.Verify(c.UserContext(), body.ChallengeID, string(body.Answer))
		if errors.Is(err, captcha.ErrVerificationFailed) {
			return c.Status(fiber.StatusBadRequest).JSON(PublicTrackResponse{
				Error:     "Security check failed. Please calculate correctly.",
				Challenge: &next,
			})
		}
		if err != nil {
			return err
		}

		// Doğrulama hatırlanmaz: sonraki sorgu için yeni soru
		next, err = gate.Issue(c.UserContext())
		if err != nil {
			return err
		}

		if strings.TrimSpace(body.CargoID) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(PublicTrackResponse{
				Error:     "Please enter a Tracking Number.",
				Challenge: &next,
			})
		}

		// 2. Kargo bilgileri
		// Hatalı biçimli numara da bulunamadı sayılır
		view, err := svc.TrackPublic(c.UserContext(), body.CargoID)
		switch {
		case errors.Is(err, ErrInvalidID), errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(PublicTrackResponse{
				Error:     "No shipment found with this Tracking Number.",
				Challenge: &next,
			})
		case err != nil:
			return err
		}

		return c.JSON(PublicTrackResponse{Shipment: view, Challenge: &next})
	}
}

// GET /api/admin/tracking/:id
func InternalTrackHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := svc.TrackInternal(c.UserContext(), c.Params("id"))
		switch {
		case errors.Is(err, ErrInvalidID):
			return fiber.NewError(fiber.StatusBadRequest, "Tracking number must be 5 letters or digits")
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Record not found")
		case err != nil:
			return err
		}
		return c.JSON(view)
	}
}
