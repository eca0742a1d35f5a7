// Package tracking assembles shipment timelines for the public and internal views.
package tracking

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"thunder-cargo/internal/privacy"
	"thunder-cargo/internal/status"
)

var (
	ErrNotFound  = errors.New("shipment not found")
	ErrInvalidID = errors.New("tracking number must be 5 letters or digits")
)

var cargoIDPattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)

// NormalizeID upper-cases and validates a tracking number.
func NormalizeID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if !cargoIDPattern.MatchString(id) {
		return "", ErrInvalidID
	}
	return id, nil
}

type Place struct {
	Branch string `json:"branch"`
	City   string `json:"city"`
}

type Summary struct {
	CargoID       string       `json:"cargo_id"`
	Status        string       `json:"status"`
	Stage         status.Stage `json:"stage"`
	Progress      int          `json:"progress"`
	Completed     bool         `json:"completed"`
	Origin        Place        `json:"origin"`
	Destination   Place        `json:"destination"`
	Sender        string       `json:"sender"`
	Receiver      string       `json:"receiver"`
	ServiceType   string       `json:"service_type"`
	Weight        float64      `json:"weight"`
	PaymentStatus string       `json:"payment_status,omitempty"`
	LastUpdated   time.Time    `json:"last_updated"`
}

// Event is one timeline row, newest first.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	Branch    string    `json:"branch"`
	City      string    `json:"city"`
	Current   bool      `json:"current"`
	Terminal  bool      `json:"terminal"`
}

type View struct {
	Summary  Summary `json:"summary"`
	Timeline []Event `json:"timeline"`
}

type audience int

const (
	public audience = iota
	internal
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// TrackPublic is the guest view: sender and receiver names are masked.
func (s *Service) TrackPublic(ctx context.Context, cargoID string) (*View, error) {
	return s.track(ctx, cargoID, public)
}

// TrackInternal is the admin view of the same data, unmasked and with payment status.
func (s *Service) TrackInternal(ctx context.Context, cargoID string) (*View, error) {
	return s.track(ctx, cargoID, internal)
}

func (s *Service) track(ctx context.Context, rawID string, aud audience) (*View, error) {
	id, err := NormalizeID(rawID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Summary(ctx, id)
	if err != nil {
		return nil, err
	}
	moves, err := s.repo.Movements(ctx, id)
	if err != nil {
		return nil, err
	}

	res := status.Classify(row.CurrentStatus)
	sum := Summary{
		CargoID:     row.CargoID,
		Status:      row.CurrentStatus,
		Stage:       res.Stage,
		Progress:    res.Progress,
		Completed:   res.Stage == status.Delivered,
		Origin:      Place{Branch: row.OriginBranch, City: row.OriginCity},
		Destination: Place{Branch: row.DestBranch, City: row.DestCity},
		Sender:      joinName(row.SenderFirst, row.SenderLast),
		Receiver:    joinName(row.ReceiverFirst, row.ReceiverLast),
		ServiceType: row.ServiceType,
		Weight:      row.Weight,
		LastUpdated: row.LastUpdated,
	}

	switch aud {
	case public:
		sum.Sender = privacy.MaskName(sum.Sender)
		sum.Receiver = privacy.MaskName(sum.Receiver)
	case internal:
		sum.PaymentStatus = row.PaymentStatus
	}

	return &View{Summary: sum, Timeline: timeline(moves)}, nil
}

func timeline(rows []MovementRow) []Event {
	events := make([]Event, 0, len(rows))
	for i, r := range rows {
		events = append(events, Event{
			Timestamp: r.LogTimestamp,
			Date:      r.LogTimestamp.Format("02.01.2006"),
			Time:      r.LogTimestamp.Format("15:04"),
			Status:    r.StatusDescription,
			Branch:    r.BranchName,
			City:      r.BranchCity,
			Current:   i == 0,
			Terminal:  status.IsTerminal(r.StatusDescription),
		})
	}
	return events
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
