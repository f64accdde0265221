// Package config holds the startup configuration of cec-follower.
//
// Settings come in layers. Built-in defaults come first, then an optional
// YAML or TOML file named by -config, then command-line flags. Later layers
// win; ignore rules from the file and the command line accumulate.
package config
