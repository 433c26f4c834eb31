// Package config manages the dsm configuration file.
//
// The configuration lives at ~/.config/dsm/config.yaml and controls the
// site base directory, the port allocation range, the default service
// drivers, and optional daemon binary overrides. A missing file is not
// an error: Load returns the built-in defaults, so dsm works out of the
// box for the common ~/www layout.
//
// # Example
//
//	base_dir: /home/dev/www
//	port_min: 10000
//	port_max: 10100
//	port_step: 3
//	www_driver: apache2
//	db_driver: mysql
//	binaries:
//	  mysqld: /home/dev/www/bin/mysqld
//
// Each site consumes port_step consecutive ports starting at its base
// port: the base serves HTTP, base+1 HTTPS, base+2 the database.
package config
