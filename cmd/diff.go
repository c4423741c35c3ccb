package cmd

import (
	"context"
	"fmt"

	"github.com/branchdiff/branchdiff/pkg/altrepo"
	"github.com/branchdiff/branchdiff/pkg/packages"
	"github.com/branchdiff/branchdiff/pkg/report"
	"github.com/branchdiff/branchdiff/pkg/snapshot"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "compare the package sets of two branches",
	RunE:  diff,
}

const (
	flagBranch1   = "branch1"
	flagBranch2   = "branch2"
	flagSnapshot1 = "snapshot1"
	flagSnapshot2 = "snapshot2"
)

func init() {
	diffCmd.Flags().StringP(flagConfig, "c", "", "path to a comparison configuration file")
	diffCmd.Flags().String(flagURL, "", "base URL of the repository database export API")
	diffCmd.Flags().String(flagBranch1, "", "first branch to compare")
	diffCmd.Flags().String(flagBranch2, "", "second branch to compare")
	diffCmd.Flags().String(flagArch, "", "package architecture to compare")
	diffCmd.Flags().String(flagFormat, report.FormatJSON, "output format (json or text)")
	diffCmd.Flags().String(flagOutputFile, "", "write the report to a file instead of stdout")
	diffCmd.Flags().String(flagSnapshot1, "", "read the first branch from a saved snapshot instead of the API")
	diffCmd.Flags().String(flagSnapshot2, "", "read the second branch from a saved snapshot instead of the API")

	_ = diffCmd.MarkFlagFilename(flagConfig, ".yaml", ".yml", ".json")
	_ = diffCmd.MarkFlagFilename(flagSnapshot1, ".json")
	_ = diffCmd.MarkFlagFilename(flagSnapshot2, ".json")
}

func diff(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	configPath, _ := cmd.Flags().GetString(flagConfig)
	urlFlag, _ := cmd.Flags().GetString(flagURL)
	branch1Flag, _ := cmd.Flags().GetString(flagBranch1)
	branch2Flag, _ := cmd.Flags().GetString(flagBranch2)
	archFlag, _ := cmd.Flags().GetString(flagArch)
	format, _ := cmd.Flags().GetString(flagFormat)
	outputPath, _ := cmd.Flags().GetString(flagOutputFile)
	snapshot1, _ := cmd.Flags().GetString(flagSnapshot1)
	snapshot2, _ := cmd.Flags().GetString(flagSnapshot2)

	cfg, err := readConfig(configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	url := resolve(urlFlag, cfg.Spec.URL, defaultURL)
	branch1 := resolve(branch1Flag, cfg.Spec.Branch1, defaultBranch1)
	branch2 := resolve(branch2Flag, cfg.Spec.Branch2, defaultBranch2)
	arch := resolve(archFlag, cfg.Spec.Arch, defaultArch)

	if branch1 == branch2 {
		return fmt.Errorf("branches must differ: %s", branch1)
	}

	client := altrepo.NewClient(url)
	log.V(1).Info("comparing branches", "branch1", branch1, "branch2", branch2, "arch", arch)

	// the two listings are independent, fetch them together
	var first, second *altrepo.BranchExport
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() (err error) {
		first, err = loadBranch(ctx, client, snapshot1, branch1, arch)
		return
	})
	g.Go(func() (err error) {
		second, err = loadBranch(ctx, client, snapshot2, branch2, arch)
		return
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c1 := packages.NewCollection(cmd.Context(), first.Records())
	c2 := packages.NewCollection(cmd.Context(), second.Records())
	result := packages.Compare(c1, c2)
	log.V(1).Info("comparison complete", "onlyInFirst", len(result.OnlyInFirst), "onlyInSecond", len(result.OnlyInSecond), "differing", len(result.Differing))

	out, err := openOutput(cmd, outputPath)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer out.Close()

	return report.New(branch1, branch2, arch, c1, c2, result).Render(format, out)
}

func loadBranch(ctx context.Context, client *altrepo.Client, snapshotSrc, branch, arch string) (*altrepo.BranchExport, error) {
	if snapshotSrc != "" {
		return snapshot.Read(ctx, snapshotSrc)
	}
	return client.Branch(ctx, branch, arch)
}
