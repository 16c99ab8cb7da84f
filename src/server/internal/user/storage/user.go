package userstorage

// the raw document shape, converted to the entity form at the storage boundary
type dbUser = map[string]any
