package helpers

import "strings"

// Option lists shown on the public intake forms.
var (
	ContactInquiryTypes = []string{
		"General Inquiry",
		"Request for Quote",
		"Technical Support",
		"Product Information",
		"Partnership",
		"Other",
	}

	BookingTopics = []string{
		"General Equipment Inquiry",
		"Product Selection Assistance",
		"Technical Specifications",
		"Pricing and Quotation",
		"Application Engineering",
		"After-Sales Support",
		"Partnership Opportunities",
		"Other",
	}

	BookingTimeSlots = []string{
		"9:00 AM - 10:00 AM",
		"10:00 AM - 11:00 AM",
		"11:00 AM - 12:00 PM",
		"1:00 PM - 2:00 PM",
		"2:00 PM - 3:00 PM",
		"3:00 PM - 4:00 PM",
		"4:00 PM - 5:00 PM",
	}
)

// OptionalString maps a blank form value to nil.
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// NormalizeOptional maps nil and blank values to nil and leaves everything
// else untouched.
func NormalizeOptional(p *string) *string {
	if p == nil {
		return nil
	}
	return OptionalString(*p)
}

// Deref returns the empty string for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FormBool reads a checkbox style value.
func FormBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
