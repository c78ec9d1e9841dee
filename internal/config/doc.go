// Package config defines the loader's configuration model and the HCL file
// loader for it. The config file is optional; CLI flags override everything
// it sets. Filename patterns live here so alternate archive naming schemes
// are a configuration change, not a code change.
package config
