package generator

// Languages of the commitizen prompt configuration.
const (
	LanguageCN = "cn"
	LanguageEN = "en"
)

// Workspace types.
const (
	WorkspaceApplication = "application"
	WorkspacePlugin      = "plugin"
)

// Options configures an init run.
type Options struct {
	Language      string
	WorkspaceType string
	LintStaged    bool
	SkipFormat    bool
	SkipInstall   bool
	DryRun        bool
}

// Normalize returns opts with unsupported values replaced by their defaults.
func (o Options) Normalize() Options {
	if o.Language != LanguageCN && o.Language != LanguageEN {
		o.Language = LanguageCN
	}
	if o.WorkspaceType != WorkspacePlugin {
		o.WorkspaceType = WorkspaceApplication
	}
	return o
}

// IsPlugin reports whether the workspace publishes packages.
func (o Options) IsPlugin() bool {
	return o.WorkspaceType == WorkspacePlugin
}
