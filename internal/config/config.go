package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits list-valued variables
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The admin allow-list and the gateway secret hash
// are injected here rather than embedded in handler logic so that test and
// production deployments can differ without code changes.
type Config struct {
	Env               string   // application environment (e.g. "dev", "prod")
	Port              string   // HTTP port to listen on
	DBUser            string   // database username
	DBPass            string   // database password (optional)
	DBHost            string   // database host address
	DBPort            string   // database port number
	DBName            string   // database name
	JWTSecret         string   // secret used to sign JWTs
	AccessTTLMin      int      // access token time-to-live in minutes
	GatewaySecretHash string   // bcrypt hash of the chat gateway shared secret
	AdminUserIDs      []uint64 // participant ids allowed to call admin endpoints
	CatalogFile       string   // path to the JSON activity catalog definitions
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		JWTSecret:         must("JWT_SECRET"),
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),
		GatewaySecretHash: must("GATEWAY_SECRET_HASH"),
		AdminUserIDs:      mustIDList("ADMIN_USER_IDS"),
		CatalogFile:       must("ACTIVITY_CATALOG_FILE"),
	}
}

// AdminSet returns the allow-list as a set for constant-time membership
// checks in the admin gate middleware.
func (c Config) AdminSet() map[uint64]bool {
	set := make(map[uint64]bool, len(c.AdminUserIDs))
	for _, id := range c.AdminUserIDs {
		set[id] = true
	}
	return set
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// mustIDList parses a comma-separated list of numeric user ids. Empty
// entries are skipped; a malformed entry is fatal so a typo in the admin
// allow-list is caught at startup rather than silently locking admins out.
func mustIDList(key string) []uint64 {
	s := must(key)
	parts := strings.Split(s, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			log.Fatalf("invalid id in %s: %q", key, p)
		}
		ids = append(ids, n)
	}
	return ids
}
