// Package status projects free-text cargo statuses onto a closed lifecycle stage.
package status

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stage is the coarse lifecycle position of a shipment.
type Stage int

const (
	Unknown Stage = iota
	Pending
	InTransit
	OutForDelivery
	Delivered
)

var stageNames = [...]string{
	Unknown:        "unknown",
	Pending:        "pending",
	InTransit:      "in_transit",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
}

var stageProgress = [...]int{
	Unknown:        0,
	Pending:        25,
	InTransit:      50,
	OutForDelivery: 75,
	Delivered:      100,
}

func (s Stage) String() string {
	if s < Unknown || s > Delivered {
		return stageNames[Unknown]
	}
	return stageNames[s]
}

// Progress returns the percentage shown on progress bars.
func (s Stage) Progress() int {
	if s < Unknown || s > Delivered {
		return 0
	}
	return stageProgress[s]
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(b []byte) error {
	for i, name := range stageNames {
		if name == string(b) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", b)
}

// Result is what the dashboard needs from a status label.
type Result struct {
	Stage    Stage `json:"stage"`
	Progress int   `json:"progress"`
}

type rule struct {
	keyword string
	stage   Stage
	word    bool // tam kelime eşleşmesi
}

// First match wins. Delivered words are checked first and only as whole words,
// so "kurye teslim etti" is Delivered while "teslimat" stays OutForDelivery.
// Longer phrases sit above the shorter words they contain.
var rules = compile([]rule{
	{keyword: "delivered", stage: Delivered, word: true},
	{keyword: "teslim edildi", stage: Delivered, word: true},
	{keyword: "teslim", stage: Delivered, word: true},
	{keyword: "out for delivery", stage: OutForDelivery},
	{keyword: "delivery", stage: OutForDelivery},
	{keyword: "dağıtım", stage: OutForDelivery},
	{keyword: "teslimat", stage: OutForDelivery},
	{keyword: "kurye", stage: OutForDelivery},
	{keyword: "transit", stage: InTransit},
	{keyword: "yolda", stage: InTransit},
	{keyword: "yol", stage: InTransit},
	{keyword: "transfer", stage: InTransit},
	{keyword: "aktarma", stage: InTransit},
	{keyword: "pending", stage: Pending},
	{keyword: "preparing", stage: Pending},
	{keyword: "hazır", stage: Pending},
	{keyword: "kabul", stage: Pending},
	{keyword: "accepted", stage: Pending},
})

func compile(in []rule) []rule {
	out := make([]rule, len(in))
	for i, r := range in {
		kw := Normalize(r.keyword)
		if r.word {
			kw = " " + kw + " "
		}
		out[i] = rule{keyword: kw, stage: r.stage, word: r.word}
	}
	return out
}

// words splits on anything that is not a letter or digit and pads the result
// with spaces, so " teslim " only matches the whole word.
func words(s string) string {
	f := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(f, " ") + " "
}

// Classify maps a status label to its stage. Empty or unrecognised text is Unknown/0.
func Classify(label string) Result {
	s := Normalize(label)
	if s == "" {
		return Result{Stage: Unknown, Progress: 0}
	}
	w := words(s)
	for _, r := range rules {
		text := s
		if r.word {
			text = w
		}
		if strings.Contains(text, r.keyword) {
			return Result{Stage: r.stage, Progress: r.stage.Progress()}
		}
	}
	return Result{Stage: Unknown, Progress: 0}
}

// IsTerminal reports whether the label denotes final delivery.
func IsTerminal(label string) bool {
	return Classify(label).Stage == Delivered
}

// Normalize folds case and strips diacritics so Turkish and English spellings
// compare equal: "TESLİM EDİLDİ", "Dağıtımda" -> "teslim edildi", "dagitimda".
func Normalize(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r == 'ı' {
				return 'i'
			}
			return r
		}),
		norm.NFC,
		cases.Fold(),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}
