package utils

import "time"

// Clock abstracts time.Now so expiry and conflict checks stay deterministic
// under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
