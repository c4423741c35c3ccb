package cmd

import (
	"fmt"

	"github.com/branchdiff/branchdiff/pkg/altrepo"
	"github.com/branchdiff/branchdiff/pkg/snapshot"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "save the package listing of one branch as a snapshot",
	RunE:  fetch,
}

const flagBranch = "branch"

func init() {
	fetchCmd.Flags().StringP(flagConfig, "c", "", "path to a comparison configuration file")
	fetchCmd.Flags().String(flagURL, "", "base URL of the repository database export API")
	fetchCmd.Flags().String(flagBranch, "", "branch to fetch")
	fetchCmd.Flags().String(flagArch, "", "package architecture to fetch")
	fetchCmd.Flags().String(flagOutputFile, "", "path to write the snapshot to")

	_ = fetchCmd.MarkFlagRequired(flagBranch)
	_ = fetchCmd.MarkFlagRequired(flagOutputFile)
	_ = fetchCmd.MarkFlagFilename(flagConfig, ".yaml", ".yml", ".json")
}

func fetch(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString(flagConfig)
	urlFlag, _ := cmd.Flags().GetString(flagURL)
	branch, _ := cmd.Flags().GetString(flagBranch)
	archFlag, _ := cmd.Flags().GetString(flagArch)
	outputPath, _ := cmd.Flags().GetString(flagOutputFile)

	cfg, err := readConfig(configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	url := resolve(urlFlag, cfg.Spec.URL, defaultURL)
	arch := resolve(archFlag, cfg.Spec.Arch, defaultArch)

	export, err := altrepo.NewClient(url).Branch(cmd.Context(), branch, arch)
	if err != nil {
		return err
	}
	return snapshot.Write(cmd.Context(), outputPath, export)
}
