// Package config loads runtime configuration for the Together client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config; ".yaml"/".yml"
//     files are YAML, anything else JSON.
//  3. Environment variables prefixed with TOGETHER_ (e.g. TOGETHER_SERVER_URL).
//  4. Short command-line flags (-a, -d, -p, -l, -t, -i, -g, -v).
//
// # File schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000/api/",
//	  "db_path": "together.db",
//	  "platform": "mobile",
//	  "locale": "fr",
//	  "http_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "stale_refetch_guard": false
//	}
//
// Only keys present in the file override earlier values.
package config
