package contextkeys

// Custom key type to avoid collisions with other context values.
type contextKey string

// DBContextKey is the key under which the per-request *gorm.DB handle
// is stored in the request context.
const DBContextKey = contextKey("db")
