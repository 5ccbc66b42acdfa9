package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   storage DSN (mongodb:// or postgres://)
//	-r string   Redis address
//	-s string   session signing secret
//	-t int      session validity, minutes
//	-b int      bcrypt cost
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-r", "-s", "-t", "-b"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.StorageDSN, "d", config.StorageDSN, "storage DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "Redis address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
		}
	})
	return nil
}
