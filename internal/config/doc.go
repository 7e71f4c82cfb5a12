// Package config loads runtime configuration for the employee directory.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   data directory holding the database file
//	-n string   database (collection) name
//	-k string   encryption key
//	-p          prompt for the encryption key on the terminal
//	-s string   seed dataset file (.json, .yaml, .yml); empty uses the bundled one
//	-m int      maximum number of records to seed (1..200)
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json)
//
// Positional arguments that remain after the flags form a one-shot shell
// command (e.g. "filter NY Any Any"); with none the shell is interactive.
// Unknown flags are rejected. Values starting with '-' must use the '=' form
// (-k=-secret).
//
// # JSON schema
//
//	{
//	  "data_dir": "data",
//	  "database_name": "employees",
//	  "encryption_key": "...",
//	  "seed_file": "staff.yaml",
//	  "seed_limit": 200,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// The default encryption key is a fixed placeholder shared by every install;
// deployments should supply their own via -k, -p or the JSON file.
package config
