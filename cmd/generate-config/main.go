package main

import (
	"os"

	"diamond-server/internal/config"

	"gopkg.in/yaml.v2"
)

// prints the default configuration as YAML, ready to be saved as config.yaml
func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
