package service

// AvailableTimes returns the catalog slots not present in booked, in
// catalog order. The result is never nil.
func AvailableTimes(catalog, booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	available := make([]string, 0, len(catalog))
	for _, slot := range catalog {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available
}
