package cli

import "testpick/internal/config"

// Flags holds command-line flags
type Flags struct {
	Full       bool
	Verbose    bool
	Debug      bool
	ConfigFile string
	Processors int
	NameFilter string
	FileFilter string
	Table      bool
	FailFast   bool
	Run        bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Full:       f.Full,
		Verbose:    f.Verbose,
		Debug:      f.Debug,
		Processors: f.Processors,
		NameFilter: f.NameFilter,
		FileFilter: f.FileFilter,
		Table:      f.Table,
		FailFast:   f.FailFast,
		Run:        f.Run,
	}
}
