package domain

// SlotCatalog is the fixed, ordered list of bookable hourly slots.
var SlotCatalog = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
	"5:00 PM", "6:00 PM", "7:00 PM",
}

// IsSlot reports whether label is one of the catalog slots.
func IsSlot(label string) bool {
	for _, slot := range SlotCatalog {
		if slot == label {
			return true
		}
	}
	return false
}

// Availability is the slot split for one day.
type Availability struct {
	Date           string
	AvailableSlots []string
	BookedSlots    []string
}

// SplitSlots partitions the catalog into available and booked slots, both in catalog order.
// Labels outside the catalog are ignored.
func SplitSlots(date string, taken []string) Availability {
	booked := make(map[string]struct{}, len(taken))
	for _, label := range taken {
		booked[label] = struct{}{}
	}

	result := Availability{
		Date:           date,
		AvailableSlots: make([]string, 0, len(SlotCatalog)),
		BookedSlots:    make([]string, 0, len(booked)),
	}
	for _, slot := range SlotCatalog {
		if _, ok := booked[slot]; ok {
			result.BookedSlots = append(result.BookedSlots, slot)
			continue
		}
		result.AvailableSlots = append(result.AvailableSlots, slot)
	}
	return result
}
