package cli

var (
	verbose    bool
	configFile string
	deviceName string

	// for the run / start commands
	debug      bool
	raw        bool
	listenAddr string

	// for the workspace command
	wsWrap bool
	wsCols int
)
