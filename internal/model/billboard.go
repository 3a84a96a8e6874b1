package model

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Billboard is the reference-data view of a single rentable advertising unit.
// It is loaded per contract edit and never mutated by the engine.
type Billboard struct {
	ID           uuid.UUID
	Name         string
	SizeID       int64
	SizeName     string // symbolic size, possibly transposed ("5x13" vs "13x5")
	Width        float64
	Height       float64
	Level        string
	Municipality string
	Faces        int
	Partnership  bool

	// Friend units are rented wholesale from an external company.
	FriendCompanyID  *uuid.UUID
	FriendRentalCost float64
}

func (b Billboard) IsFriend() bool {
	return b.FriendCompanyID != nil
}

// Area returns the unit surface in square meters. The stored dimension
// record wins over the symbolic size string, which may be stale.
func (b Billboard) Area() float64 {
	if b.Width > 0 && b.Height > 0 {
		return b.Width * b.Height
	}
	w, h, ok := ParseSize(b.SizeName)
	if !ok {
		return 0
	}
	return w * h
}

// FaceCount defaults to a single face when the record leaves it unset.
func (b Billboard) FaceCount() int {
	if b.Faces < 1 {
		return 1
	}
	return b.Faces
}

// ParseSize extracts the two dimensions of a symbolic size such as
// "13x5", "5 X 13" or "4×3".
func ParseSize(raw string) (float64, float64, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "×", "x")
	parts := strings.Split(raw, "x")
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, errA := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	b, errB := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errA != nil || errB != nil || a <= 0 || b <= 0 {
		return 0, 0, false
	}
	return a, b, true
}

// NormalizeSize rewrites a symbolic size as "larger x smaller" so that
// transposed inputs compare equal. Unparseable sizes are returned
// trimmed and lowercased as-is.
func NormalizeSize(raw string) string {
	a, b, ok := ParseSize(raw)
	if !ok {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	if b > a {
		a, b = b, a
	}
	return formatDim(a) + "x" + formatDim(b)
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
