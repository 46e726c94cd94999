/*
Cnfserver starts a grammar normalization server and begins listening for new
connections.

Usage:

	cnfserver [flags]
	cnfserver [flags] -l [[ADDRESS]:PORT]

Once started, the server will listen for HTTP requests and respond to them
using REST protocol. By default, it will listen on localhost:8080. This can be
changed with the --listen/-l flag (or config via environment var or config
file). The flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the IP address preceeded by a colon, such as
":6001".

Every setting is taken from its flag if given, otherwise from its environment
variable, otherwise from the config file, and otherwise its default is used.

If a JWT token secret is not given, one will be automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as soon
as the server shuts down. This is suitable for testing, but must be given via
either CLI flags, environment variable, or config file if running in
production.

The flags are:

	-v, --version
		Give the current version of the server and then exit.

	-c, --config FILE
		Read settings from the given TOML file. The keys are listen,
		token_secret, database, and unauth_delay_ms.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		CHOMSKY_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less than
		32 bytes in the secret, it will be repeated until it is. The maximum
		size is 64 bytes. If not given, will default to the value of environment
		variable CHOMSKY_TOKEN_SECRET. If no secret is specified or an empty
		secret is given, a random secret will be automatically generated. Note
		that any tokens issued with a random secret will become invalid as soon
		as the server shuts down.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data director such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable CHOMSKY_DATABASE. If no DB driver
		is specified or an empty is given, an in-memory database is
		automatically selected.
*/
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"os"

	"github.com/dekarrin/chomsky/internal/version"
	"github.com/dekarrin/chomsky/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "CHOMSKY_LISTEN_ADDRESS"
	EnvSecret = "CHOMSKY_TOKEN_SECRET"
	EnvDB     = "CHOMSKY_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the server and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Read settings from the given TOML config file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (cnfi v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	// assemble a server config, starting from the file if there is one
	var cfg server.Config
	if *flagConfig != "" {
		var err error
		cfg, err = server.LoadConfigFile(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config file: %s\n", err)
			os.Exit(1)
		}
	}

	if listenAddr := setting("listen", *flagListen, EnvListen); listenAddr != "" {
		cfg.ListenAddress = listenAddr
	}

	if dbConnStr := setting("db", *flagDB, EnvDB); dbConnStr != "" {
		db, err := server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err)
			os.Exit(1)
		}
		cfg.DB = db
	}

	// get token secret
	if tokSecStr := setting("secret", *flagSecret, EnvSecret); tokSecStr != "" {
		cfg.TokenSecret = []byte(tokSecStr)
	}
	// was the secret given?
	if len(cfg.TokenSecret) > 0 {
		tokSecret := cfg.TokenSecret
		for len(tokSecret) < server.MinSecretSize {
			doubledTokSecret := make([]byte, len(tokSecret)*2)
			copy(doubledTokSecret, tokSecret)
			copy(doubledTokSecret[len(tokSecret):], tokSecret)
			tokSecret = doubledTokSecret
		}

		if len(tokSecret) > server.MaxSecretSize {
			// keys would be chopped at 64, so rather than the user thinking
			// they have more security by giving a longer key, refuse to start.
			fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= %d bytes\nDo -h for help.\n", len(tokSecret), server.MaxSecretSize)
			os.Exit(1)
		}
		cfg.TokenSecret = tokSecret
	} else {
		// use all 64 possible bytes if doing a generated secret
		tokSecret := make([]byte, server.MaxSecretSize)
		_, err := rand.Read(tokSecret)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}
		cfg.TokenSecret = tokSecret

		// yell at the user bc they should know their secret might be bad
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	// configuration complete, initialize the server
	cnfs, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer cnfs.Close()
	log.Printf("DEBUG Server initialized")

	// immediately create the admin user so we have someone we can log in as.
	created, err := cnfs.EnsureAdmin(context.Background(), "admin", "password")
	if err != nil {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}
	if created {
		log.Printf("INFO  Added initial admin user with password 'password'...")
	}

	// okay, now actually launch it
	log.Printf("INFO  Starting normalization server %s...", version.ServerCurrent)
	if err := cnfs.ServeForever(); err != nil {
		log.Printf("FATAL server stopped: %s", err.Error())
		os.Exit(3)
	}
}

// setting gives the value of the named flag if it was set on the command line,
// otherwise the value of the environment variable env.
func setting(flagName, flagVal, env string) string {
	if pflag.Lookup(flagName).Changed {
		return flagVal
	}
	return os.Getenv(env)
}
