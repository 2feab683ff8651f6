package types

// Config holds the paths and table name ctlfiles operates on.
// RootDir is the corpus root containing the per-system json_<system>
// directories; TemplatePath is the canonical template document.
type Config struct {
	RootDir      string `json:"root_dir" yaml:"root_dir"`
	TemplatePath string `json:"template_path" yaml:"template_path"`
	DBPath       string `json:"db_path" yaml:"db_path"`
	ControlTable string `json:"control_table" yaml:"control_table"`
}

// DefaultControlTable is the managed destination table used when the
// config does not name one.
const DefaultControlTable = "pipeline_control"

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.RootDir == "" {
		return ErrRootDirEmpty
	}
	if c.TemplatePath == "" {
		return ErrTemplatePathEmpty
	}
	return nil
}

// Control returns the configured control table name, falling back to
// DefaultControlTable when unset.
func (c Config) Control() string {
	if c.ControlTable == "" {
		return DefaultControlTable
	}
	return c.ControlTable
}
