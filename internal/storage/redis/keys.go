package redis

import (
	"fmt"

	"github.com/subhajit/appointment-booking/internal/model"
)

// Key prefix for all application data
const keyPrefix = "booking"

// sessionKey returns the Redis key holding the values of one session
func sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// doctorKey returns the Redis key holding one doctor record
func doctorKey(id model.DoctorID) string {
	return fmt.Sprintf("%s:doctor:%d", keyPrefix, id)
}

// doctorIndexKey is a sorted set of doctor IDs, scored by ID
func doctorIndexKey() string {
	return keyPrefix + ":doctors"
}

// doctorSeqKey is the counter doctor IDs are drawn from
func doctorSeqKey() string {
	return keyPrefix + ":doctor:seq"
}
