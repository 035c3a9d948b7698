package config

// settingsDTO is the on-disk structure of the optional .gird.yaml file.
// It carries tool settings only; rules are always declared
// programmatically and never read from configuration.
type settingsDTO struct {
	Girdfile    string `yaml:"girdfile"`
	Parallelism int    `yaml:"parallelism"`
	OutputSync  bool   `yaml:"outputSync"`
	Verbose     bool   `yaml:"verbose"`
	WorkDir     string `yaml:"workDir"`
}
