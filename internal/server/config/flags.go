package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/guidstore/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-r string   Redis address (host:port)
//	-w string   Redis password
//	-n int      Redis database number
//	-t int      cache TTL, seconds (0 = entries live until invalidated)
//	-o int      cache operation timeout, milliseconds
//	-e int      default record expiry, days
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and converted to
//     time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-w", "-n", "-t", "-o", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "w", config.RedisPassword, "redis password")
	fs.IntVar(&config.RedisDB, "n", config.RedisDB, "redis database number")

	cacheTTL := fs.Int("t", int(config.CacheTTL.Seconds()), "cache_ttl (in seconds)")
	cacheOpTimeout := fs.Int("o", int(config.CacheOpTimeout.Milliseconds()), "cache_op_timeout (in milliseconds)")
	defaultExpiry := fs.Int("e", int(config.DefaultExpiry.Hours()/24), "default_expiry (in days)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*cacheTTL) * time.Second
	config.CacheOpTimeout = time.Duration(*cacheOpTimeout) * time.Millisecond
	config.DefaultExpiry = time.Duration(*defaultExpiry) * 24 * time.Hour
}
