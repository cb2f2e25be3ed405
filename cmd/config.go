package cmd

// Config carries everything the process needs from its environment: HTTP and
// database settings, the token verification secret, and the ordering policy
// knobs applied by the order validator.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	JWTSecret  string

	OrderMinLeadHours         int
	OrderAllowWeekendDelivery bool
	OrderMaxItems             int
	OrderExpirySchedule       string
}
