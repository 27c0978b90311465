package internal

// Version is the ziggurat release version.
const Version = "0.3.1"
