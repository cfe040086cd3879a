package errors

import (
	"net"
	"regexp"
	"strconv"
)

// starIDRegex matches regular stars (BOB1, CASTLE12) and 100 coin stars (BOB_100).
var starIDRegex = regexp.MustCompile(`^[A-Z]+([1-9][0-9]*|_100)$`)

// courseIDRegex matches course IDs such as BOB or CASTLE.
var courseIDRegex = regexp.MustCompile(`^[A-Z]+$`)

// ValidateStarID checks that id is shaped like a star ID.
// Whether the star exists is up to the catalog.
func ValidateStarID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "star id cannot be empty")
	}
	if len(id) > 32 {
		return New(ErrCodeInvalidInput, "star id too long (max 32 characters)")
	}
	if !starIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid star id: %q", id)
	}
	return nil
}

// ValidateCourseID checks that id is shaped like a course ID.
func ValidateCourseID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "course id cannot be empty")
	}
	if len(id) > 16 {
		return New(ErrCodeInvalidInput, "course id too long (max 16 characters)")
	}
	if !courseIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid course id: %q", id)
	}
	return nil
}

// ValidateRouteSize checks the number of stars requested for a route.
func ValidateRouteSize(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidInput, "route size must be positive, got %d", n)
	}
	return nil
}

// ValidateQuota checks the maximum number of upper level stars.
func ValidateQuota(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "max upper level stars cannot be negative, got %d", n)
	}
	return nil
}

// ValidateAddr validates a host:port network address. Port 0 selects any
// free port.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "address cannot be empty")
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid address %q", addr)
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		return New(ErrCodeInvalidInput, "invalid port in address %q", addr)
	}
	return nil
}
