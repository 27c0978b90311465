// Package cli provides the command-line interface for ziggurat: the cobra
// root command, flag definitions, viper configuration loading, and the
// prioritized API key resolution (flag > config file > .env > environment).
package cli
