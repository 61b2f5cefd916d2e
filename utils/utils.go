package utils

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	yamlcomment "github.com/zijiren233/yaml-comment"
	"gopkg.in/yaml.v3"
)

func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

func WriteYaml(file string, module any) error {
	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return yamlcomment.NewEncoder(yaml.NewEncoder(f)).Encode(module)
}

func ReadYaml(file string, module any) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return yaml.NewDecoder(f).Decode(module)
}

// OptFilePath expands a leading ~ and resolves relative paths against
// dataDir.
func OptFilePath(dataDir, filePath string) (string, error) {
	if filePath == "" {
		return "", nil
	}
	filePath, err := homedir.Expand(filePath)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(filePath) && dataDir != "" {
		dataDir, err = homedir.Expand(dataDir)
		if err != nil {
			return "", err
		}
		filePath = filepath.Join(dataDir, filePath)
	}
	return filepath.Abs(filePath)
}

// ForceColor reports whether stdout is a terminal that should get
// coloured output.
func ForceColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
