package appstore

import "errors"

// ErrNotFound indicates the requested app does not exist in the store.
var ErrNotFound = errors.New("app not found")
