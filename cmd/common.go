package cmd

import (
	"io"
	"os"

	v1 "github.com/branchdiff/branchdiff/pkg/api/v1"
	"github.com/drone/envsubst"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/yaml"
)

const (
	flagConfig     = "config"
	flagURL        = "url"
	flagArch       = "arch"
	flagFormat     = "format"
	flagOutputFile = "output-file"
)

const (
	defaultURL     = "https://rdb.altlinux.org/api/export/branch_binary_packages"
	defaultBranch1 = "sisyphus"
	defaultBranch2 = "p10"
	defaultArch    = "x86_64"
)

// readConfig loads an optional comparison config file. Values may
// reference environment variables which are expanded on load.
func readConfig(s string) (v1.Compare, error) {
	if s == "" {
		return v1.Compare{}, nil
	}
	f, err := os.Open(s)
	if err != nil {
		return v1.Compare{}, err
	}
	defer f.Close()

	var config v1.Compare
	if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&config); err != nil {
		return v1.Compare{}, err
	}
	config.Spec.URL = expandEnv(config.Spec.URL)
	config.Spec.Branch1 = expandEnv(config.Spec.Branch1)
	config.Spec.Branch2 = expandEnv(config.Spec.Branch2)
	config.Spec.Arch = expandEnv(config.Spec.Arch)
	return config, nil
}

func expandEnv(s string) string {
	val, _ := envsubst.EvalEnv(s)
	return val
}

// resolve applies flag > config file > default precedence.
func resolve(flag, config, fallback string) string {
	if flag != "" {
		return flag
	}
	if config != "" {
		return config
	}
	return fallback
}

// openOutput returns the destination for rendered output: the given
// file when a path was requested, stdout otherwise.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
