// Package config manages user-level settings stored at ~/.nxcz/config.yaml.
// Settings supply the defaults of the init flags and can be overridden with
// NXCZ_* environment variables, including ones declared in a .env file in
// the working directory.
package config
