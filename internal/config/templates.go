package config

import (
	"fmt"
	"os"
)

func Template() string {
	return bitsctlTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(bitsctlTemplate), 0o600)
}

const bitsctlTemplate = `input = "input/day16.txt"
format = "text"
max_depth = 512
show_tree = false

[log]
level = "info"
timestamp = true
no_color = false
`
