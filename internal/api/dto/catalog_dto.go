package dto

import "time"

// ServiceRequest is used for both create and partial update.
type ServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceRange  *string `json:"priceRange"`
	Duration    *string `json:"duration"`
	Category    *string `json:"category"`
}

// ServiceResponse is a catalog entry.
type ServiceResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	PriceRange  string     `json:"priceRange"`
	Duration    string     `json:"duration"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// DeleteServiceResponse echoes the removed entry.
type DeleteServiceResponse struct {
	Message string          `json:"message"`
	Service ServiceResponse `json:"service"`
}

// StatsResponse holds the dashboard counters.
type StatsResponse struct {
	TotalUsers       int64            `json:"totalUsers"`
	TotalLogins      int64            `json:"totalLogins"`
	TotalBookings    int64            `json:"totalBookings"`
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
}
