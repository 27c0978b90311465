package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Input   string
	Output  string
	Target  string
	APIKey  string
	Verbose bool
	GUIMode bool

	// Translation flags
	Provider  string
	Model     string
	BatchSize int
	NoMemory  bool

	// Version flag (registered explicitly so -V stays free of -v)
	ShowVersion bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Provider:  "google",
		BatchSize: 10,
	}
}
