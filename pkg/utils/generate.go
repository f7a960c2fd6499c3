package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ==================== IDs & TOKENS ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// SlotID derives a stable UUID for a slot from its speaker, date and start
// time, so the same slot always gets the same ID (unique per
// speaker+date+hour).
func SlotID(speakerID uuid.UUID, date, startTime string) uuid.UUID {
	name := fmt.Sprintf("%s-%s-%s", speakerID.String(), date, startTime)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

// ==================== OTP ====================

func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	otp := ""
	for i := 0; i < length; i++ {
		otp += strconv.Itoa(rng.Intn(10))
	}

	return otp
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingReference creates a human-readable booking reference.
// Format: BOOK-YYYYMMDD-HHMMSS-RANDOM
func GenerateBookingReference() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rng.Intn(10000))

	return fmt.Sprintf("BOOK-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== MISC ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
