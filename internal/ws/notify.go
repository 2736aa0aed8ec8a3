package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// ListingCreatedEvent is the "broadcast signal" pushed when a neighbor
// posts a new offer or request.
type ListingCreatedEvent struct {
	Type      string `json:"type"`
	Listing   string `json:"listing"`
	Title     string `json:"title"`
	Neighbor  string `json:"neighbor"`
	Timestamp string `json:"timestamp"`
}

// BookingConfirmedEvent tells the feed a booking finished its pacing
// window.
type BookingConfirmedEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	Provider  string `json:"provider"`
	Skill     string `json:"skill"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyListingCreated(listingType, title, neighbor string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return
	}

	evt := ListingCreatedEvent{
		Type:      "listing_created",
		Listing:   listingType,
		Title:     title,
		Neighbor:  neighbor,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func NotifyBookingConfirmed(bookingID, provider, skill, method string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := BookingConfirmedEvent{
		Type:      "booking_confirmed",
		BookingID: bookingID,
		Provider:  provider,
		Skill:     skill,
		Method:    method,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
