package cmd

import "github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = config.DefaultConfigFileName

// ConfigFlagDescription describes the --config flag shared by the commands that read a project configuration.
const ConfigFlagDescription = "path to config file (default is " + DefaultProjectConfigFilename + " in the working directory)"
