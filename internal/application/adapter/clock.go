package adapter

import "time"

// Clock supplies the current instant. Tests swap it for a fixed or shifted clock.
type Clock interface {
	Now() time.Time
}
