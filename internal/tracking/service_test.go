package tracking

import (
	"context"
	"testing"

	"thunder-cargo/internal/status"
	"thunder-cargo/internal/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	_, rdb := testutil.NewDB(t)
	return NewService(NewSQLRepository(rdb))
}

func TestTrackPublic(t *testing.T) {
	svc := newService(t)

	view, err := svc.TrackPublic(context.Background(), "CG001")
	require.NoError(t, err)

	s := view.Summary
	assert.Equal(t, "CG001", s.CargoID)
	assert.Equal(t, "In Transit", s.Status)
	assert.Equal(t, status.InTransit, s.Stage)
	assert.Equal(t, 50, s.Progress)
	assert.False(t, s.Completed)
	assert.Equal(t, Place{Branch: "Kadikoy Branch", City: "Istanbul"}, s.Origin)
	assert.Equal(t, Place{Branch: "Cankaya Branch", City: "Ankara"}, s.Destination)
	assert.Equal(t, "A**** Y*****", s.Sender)
	assert.Equal(t, "A*** D****", s.Receiver)
	assert.Equal(t, "Express", s.ServiceType)
	assert.Empty(t, s.PaymentStatus)
}

func TestTrackTimelineNewestFirst(t *testing.T) {
	svc := newService(t)

	view, err := svc.TrackPublic(context.Background(), "CG001")
	require.NoError(t, err)
	require.Len(t, view.Timeline, 3)

	for i := 1; i < len(view.Timeline); i++ {
		assert.True(t, view.Timeline[i-1].Timestamp.After(view.Timeline[i].Timestamp),
			"entry %d should be newer than entry %d", i-1, i)
	}

	assert.True(t, view.Timeline[0].Current)
	assert.False(t, view.Timeline[1].Current)
	assert.Equal(t, "Arrived at Transfer Center", view.Timeline[0].Status)
	assert.Equal(t, "Shipment Accepted", view.Timeline[2].Status)
	assert.Equal(t, "10.03.2025", view.Timeline[2].Date)
	assert.Equal(t, "09:00", view.Timeline[2].Time)
}

func TestTrackTerminalEntry(t *testing.T) {
	svc := newService(t)

	view, err := svc.TrackInternal(context.Background(), "CG003")
	require.NoError(t, err)
	require.Len(t, view.Timeline, 4)

	assert.True(t, view.Summary.Completed)
	assert.Equal(t, 100, view.Summary.Progress)
	assert.True(t, view.Timeline[0].Current)
	assert.True(t, view.Timeline[0].Terminal)
	for _, e := range view.Timeline[1:] {
		assert.False(t, e.Terminal, e.Status)
	}
}

func TestTrackInternalIsUnmasked(t *testing.T) {
	svc := newService(t)

	view, err := svc.TrackInternal(context.Background(), "cg001")
	require.NoError(t, err)

	assert.Equal(t, "Ahmet Yilmaz", view.Summary.Sender)
	assert.Equal(t, "Ayse Demir", view.Summary.Receiver)
	assert.Equal(t, "Pending", view.Summary.PaymentStatus)
}

func TestTrackNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.TrackPublic(context.Background(), "ZZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrackInvalidID(t *testing.T) {
	svc := newService(t)

	for _, id := range []string{"", "CG01", "CG0011", "CG-01", "CG 01"} {
		_, err := svc.TrackPublic(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
}

func TestTrackIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.TrackPublic(ctx, "CG003")
	require.NoError(t, err)
	second, err := svc.TrackPublic(ctx, "CG003")
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("views differ (-first +second):\n%s", diff)
	}
}

type stubRepo struct {
	summary SummaryRow
	moves   []MovementRow
}

func (s stubRepo) Summary(context.Context, string) (SummaryRow, error) { return s.summary, nil }
func (s stubRepo) Movements(context.Context, string) ([]MovementRow, error) {
	return s.moves, nil
}

func TestTrackMissingNamesUsePlaceholder(t *testing.T) {
	svc := NewService(stubRepo{summary: SummaryRow{CargoID: "AB123", CurrentStatus: "???"}})

	view, err := svc.TrackPublic(context.Background(), "AB123")
	require.NoError(t, err)

	assert.Equal(t, "******", view.Summary.Sender)
	assert.Equal(t, status.Unknown, view.Summary.Stage)
	assert.Empty(t, view.Timeline)
}
