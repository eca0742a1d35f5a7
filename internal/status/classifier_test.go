package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label    string
		stage    Stage
		progress int
	}{
		{"Pending", Pending, 25},
		{"Preparing", Pending, 25},
		{"Kargo hazırlanıyor", Pending, 25},
		{"HAZIR", Pending, 25},
		{"Shipment Accepted", Pending, 25},
		{"In Transit", InTransit, 50},
		{"Yolda", InTransit, 50},
		{"Transfer merkezinde", InTransit, 50},
		{"Out for Delivery", OutForDelivery, 75},
		{"In Delivery for Cargo Branch", OutForDelivery, 75},
		{"Dağıtımda", OutForDelivery, 75},
		{"DAĞITIMDA", OutForDelivery, 75},
		{"Teslimat için kuryede", OutForDelivery, 75},
		{"Delivered", Delivered, 100},
		{"Teslim Edildi", Delivered, 100},
		{"Returned", Unknown, 0},
		{"", Unknown, 0},
		{"   ", Unknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := Classify(tt.label)
			assert.Equal(t, tt.stage, got.Stage)
			assert.Equal(t, tt.progress, got.Progress)
		})
	}
}

func TestDeliveredKeywordsAlwaysComplete(t *testing.T) {
	labels := []string{
		"Delivered",
		"delivered",
		"DELIVERED to recipient",
		"Package delivered at door",
		"Teslim edildi",
		"TESLİM EDİLDİ",
		"Alıcıya teslim edildi",
		"Kurye teslim etti",
		"Dağıtımda teslim alındı",
		"Out for delivery, delivered at 14:05",
		"Teslim (kurye: Ali)",
	}
	for _, l := range labels {
		assert.Equal(t, 100, Classify(l).Progress, l)
		assert.True(t, IsTerminal(l), l)
	}
}

func TestTeslimatIsNotDelivered(t *testing.T) {
	for _, l := range []string{"Teslimat için kuryede", "teslimata çıktı", "Undelivered, out for delivery again"} {
		assert.Equal(t, OutForDelivery, Classify(l).Stage, l)
	}
}

func TestUnrecognisedIsUnknown(t *testing.T) {
	for _, l := range []string{"Lost", "xyz", "Returned to sender", "İptal"} {
		got := Classify(l)
		assert.Equal(t, Unknown, got.Stage, l)
		assert.Zero(t, got.Progress, l)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "teslim edildi", Normalize("TESLİM   EDİLDİ"))
	assert.Equal(t, "dagitimda", Normalize("Dağıtımda"))
	assert.Equal(t, "sukru", Normalize("Şükrü"))
}

func TestStageJSON(t *testing.T) {
	b, err := json.Marshal(Classify("Out for Delivery"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"stage":"out_for_delivery","progress":75}`, string(b))

	var back Result
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, OutForDelivery, back.Stage)
	assert.Error(t, json.Unmarshal([]byte(`{"stage":"lost"}`), &back))

	assert.Equal(t, "unknown", Stage(42).String())
	assert.Equal(t, 0, Stage(-1).Progress())
}
