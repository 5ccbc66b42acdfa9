// Package config provides configuration for the TukTask CLI.
//
// Values are loaded in this order, later sources overriding earlier ones:
//
//  1. Defaults (LoadDefaults)
//  2. JSON file named by -c / -config
//  3. Command-line flags:
//     -a string   base URL of the TukTask API (e.g. http://127.0.0.1:8080)
//     -t int      request timeout in seconds
//
// JSON keys:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "session_dir": ".tuktask"
//	}
//
// request_timeout accepts a duration string or integer nanoseconds.
package config
