package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultEnvFile is the dotenv file read for overrides
	DefaultEnvFile = ".testpick.env"
	// DefaultHistoryDir is the directory holding the run history
	DefaultHistoryDir = ".testpick"
	// DefaultHistoryFile is the run history file name
	DefaultHistoryFile = "history.json"
	// DefaultHistoryLimit is the number of runs kept in the history
	DefaultHistoryLimit = 20
	// DefaultProcessors is the default number of parallel workers
	DefaultProcessors = 4

	// DefaultPytest is the pytest runner
	DefaultPytest = "pytest"
	// DefaultCargo is the cargo runner
	DefaultCargo = "cargo"
	// DefaultGo is the go toolchain runner
	DefaultGo = "go"
	// DefaultPHPUnit is the PHPUnit runner, relative to the composer project root
	DefaultPHPUnit = "vendor/bin/phpunit"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"target",
	"__pycache__",
	"venv",
	"dist",
	"build",
}
