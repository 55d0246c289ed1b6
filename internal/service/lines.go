package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
)

const (
	maxItemNameLen    = 255
	maxOrderNumberLen = 20
	orderSuffixLen    = 6

	// maxGuestCount bounds the seats one table session can hold.
	maxGuestCount = 100
)

// StoreTableSessionState is the floor client's snapshot of a seated table.
type StoreTableSessionState struct {
	GuestCount float64       `json:"guestCount"`
	Seats      []SeatState   `json:"seats"`
	TableItems []SessionItem `json:"tableItems"`
}

// SeatState holds the items ordered for one seat.
type SeatState struct {
	Number int32         `json:"number"`
	Items  []SessionItem `json:"items"`
}

// SessionItem uses the floor UI status vocabulary.
type SessionItem struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"`
	WaveNumber *int32          `json:"waveNumber,omitempty"`
}

// lineItem is a flattened, persistable item.
type lineItem struct {
	name   string
	price  decimal.Decimal
	status database.OrderItemStatus
	notes  string
	seat   int32
	wave   int32
}

// mapUIStatus converts floor vocabulary to stored item status. ok is false
// for void and anything unknown.
func mapUIStatus(s string) (database.OrderItemStatus, bool) {
	switch s {
	case enum.UIItemHeld, enum.UIItemSent:
		return database.OrderItemStatusPending, true
	case enum.UIItemCooking:
		return database.OrderItemStatusPreparing, true
	case enum.UIItemReady:
		return database.OrderItemStatusReady, true
	case enum.UIItemServed:
		return database.OrderItemStatusServed, true
	}
	return "", false
}

// normalizeItemStatus maps a stored status back for reads; anything
// unrecognized reads as pending.
func normalizeItemStatus(s database.OrderItemStatus) database.OrderItemStatus {
	if s.Valid() {
		return s
	}
	return database.OrderItemStatusPending
}

func waveOf(item SessionItem) int32 {
	if item.WaveNumber == nil || *item.WaveNumber < 1 {
		return 1
	}
	return *item.WaveNumber
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func itemNotes(seat, wave int32) string {
	label := "Shared"
	if seat > 0 {
		label = fmt.Sprintf("Seat %d", seat)
	}
	return fmt.Sprintf("%s · Wave %d", label, wave)
}

// flattenSessionState emits one line per non-void item, seat items first,
// then shared table items on seat 0. Negative seat numbers count as shared.
// Prices are rounded to cents here so stored prices and order subtotals agree.
func flattenSessionState(state StoreTableSessionState) []lineItem {
	var lines []lineItem
	add := func(item SessionItem, seat int32) {
		status, ok := mapUIStatus(item.Status)
		if !ok {
			return
		}
		if seat < 0 {
			seat = 0
		}
		wave := waveOf(item)
		lines = append(lines, lineItem{
			name:   truncateRunes(item.Name, maxItemNameLen),
			price:  item.Price.Round(2),
			status: status,
			notes:  itemNotes(seat, wave),
			seat:   seat,
			wave:   wave,
		})
	}
	for _, seat := range state.Seats {
		for _, item := range seat.Items {
			add(item, seat.Number)
		}
	}
	for _, item := range state.TableItems {
		add(item, 0)
	}
	return lines
}

// seededGuestCount floors the client's count with a minimum of one and a
// maximum of maxGuestCount.
func seededGuestCount(n float64) int32 {
	if math.IsNaN(n) || n < 1 {
		return 1
	}
	if n > maxGuestCount {
		return maxGuestCount
	}
	return int32(math.Floor(n))
}

// checkGuestCount rejects counts no table can seat. NaN is left to
// seededGuestCount, which floors it to one.
func checkGuestCount(n float64) error {
	if n > maxGuestCount {
		return ErrInvalidGuestCount
	}
	return nil
}

var trailingDigits = regexp.MustCompile(`(\d+)\s*$`)

// orderNumber builds "T<table digits>-<base36 millis suffix>", at most
// maxOrderNumberLen characters.
func orderNumber(tableNumber string, now time.Time) string {
	digits := "1"
	if m := trailingDigits.FindStringSubmatch(tableNumber); m != nil {
		digits = m[1]
	}

	suffix := strconv.FormatInt(now.UnixMilli(), 36)
	if len(suffix) > orderSuffixLen {
		suffix = suffix[len(suffix)-orderSuffixLen:]
	}

	if room := maxOrderNumberLen - len("T-") - len(suffix); len(digits) > room {
		digits = digits[len(digits)-room:]
	}
	return "T" + digits + "-" + strings.ToLower(suffix)
}
