package rfe

import "time"

// hostNow is the sweep/screen-data capture clock. It's a var, not a direct
// time.Now call, so tests can pin it for deterministic Timestamp fields.
var hostNow = time.Now
