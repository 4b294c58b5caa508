package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"roombook/internal/models"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// pathID parses the {id} path segment. The core relies on the boundary
// for integer-ness.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("id must be a positive integer")
	}
	return id, nil
}

func validDate(s string) bool {
	return datePattern.MatchString(s)
}

func validTime(s string) bool {
	return timePattern.MatchString(s)
}

func validRoomStatus(s string) bool {
	return s == models.RoomStatusActive || s == models.RoomStatusInactive
}

// requireFields collects the names of required fields that are blank
// and reports them in one message, first missing field first.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s is required", strings.Join(missing, ", "))
	}
	return nil
}
