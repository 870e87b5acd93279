// Package kernelconfig loads an optional .kestrelrc.yaml startup-snapshot
// override, feeding the stat_startup reply's gui/projectPath/scriptFile/
// startDir/startupScript fields (spec.md §6) ahead of whatever the IDE-side
// transport sends on the same channel.
package kernelconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kestrel-lang/kestrel/internal/kernel/adapters"
)

// DefaultFilename is the file Load looks for relative to the working
// directory when no explicit path is given.
const DefaultFilename = ".kestrelrc.yaml"

// startupEnvVar is the $KESTRELSTARTUP sentinel (SPEC_FULL.md §6,
// renamed from the reference's $PYTHONSTARTUP): when StartupScript equals
// this literal, it expands to the like-named environment variable.
const startupEnvVar = "$KESTRELSTARTUP"

// File is the on-disk shape of .kestrelrc.yaml.
type File struct {
	GUI           string `yaml:"gui"`
	ProjectPath   string `yaml:"projectPath"`
	ScriptFile    string `yaml:"scriptFile"`
	StartDir      string `yaml:"startDir"`
	StartupScript string `yaml:"startupScript"`
}

// Load reads path (or DefaultFilename, if path is empty) and returns its
// contents as a StartupSnapshot. A missing file is not an error: it yields
// the zero snapshot, since the override is optional.
func Load(path string) (adapters.StartupSnapshot, error) {
	if path == "" {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return adapters.StartupSnapshot{}, nil
		}
		return adapters.StartupSnapshot{}, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return adapters.StartupSnapshot{}, err
	}

	return adapters.StartupSnapshot{
		GUI:           f.GUI,
		ProjectPath:   f.ProjectPath,
		ScriptFile:    f.ScriptFile,
		StartDir:      f.StartDir,
		StartupScript: ExpandStartupScript(f.StartupScript),
	}, nil
}

// Merge layers override on top of base: any non-empty field in override
// wins, letting a real stat_startup message from the transport take
// precedence over the file-based default when both are present.
func Merge(base, override adapters.StartupSnapshot) adapters.StartupSnapshot {
	result := base
	if override.GUI != "" {
		result.GUI = override.GUI
	}
	if override.ProjectPath != "" {
		result.ProjectPath = override.ProjectPath
	}
	if override.ScriptFile != "" {
		result.ScriptFile = override.ScriptFile
	}
	if override.StartDir != "" {
		result.StartDir = override.StartDir
	}
	if override.StartupScript != "" {
		result.StartupScript = override.StartupScript
	}
	return result
}

// ExpandStartupScript expands the $KESTRELSTARTUP sentinel to the
// environment variable of the same name (spec.md §6 "Startup script
// semantics").
func ExpandStartupScript(script string) string {
	if script == startupEnvVar {
		return os.Getenv("KESTRELSTARTUP")
	}
	return script
}
