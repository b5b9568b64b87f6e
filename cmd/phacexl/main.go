// Command phacexl generates finite-thickness interface elements for 2D
// polycrystal microstructure meshes created by Neper and modified by Phon.
// It shrinks each grain toward its centroid, repairs the triple and
// quadruple junction points this opens up, and writes an Abaqus-readable
// deck; the cohesive elements inserted by Phon then occupy finite gaps.
//
// The transform itself lives in pkg/shrink and consumes values only; all
// argument handling stays here.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Mote3D/PhaceXL-2D/pkg/config"
	"github.com/Mote3D/PhaceXL-2D/pkg/inp"
	"github.com/Mote3D/PhaceXL-2D/pkg/render"
	"github.com/Mote3D/PhaceXL-2D/pkg/shrink"
)

const previewWidth = 1200

var (
	flagInput     string
	flagCentroids string
	flagOutput    string
	flagSFactor   float64
	flagPeriodic  bool
	flagPreview   string
	flagConfig    string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "phacexl",
	Short: "Generate finite-thickness grain boundary elements for 2D polycrystal meshes",
	Long: `phacexl parses a 2D polycrystal microstructure mesh generated by Neper
and modified by Phon, shrinks each grain toward its centroid to open a
finite-thickness gap along the grain boundaries, repairs the junction
points where three or more grains meet, and writes the modified mesh in
a format readable by Abaqus CAE.

Example:
  phacexl -i mesh.inp -c centroids.txt -s 0.1 -p`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	fl := rootCmd.Flags()
	fl.StringVarP(&flagInput, "input", "i", "", "polycrystal microstructure mesh file (Neper + Phon)")
	fl.StringVarP(&flagCentroids, "centroids", "c", "", "grain centroid coordinate file")
	fl.StringVarP(&flagOutput, "output", "o", "", "output file (default: input stem + .modified.inp)")
	fl.Float64VarP(&flagSFactor, "sfactor", "s", config.DefaultShrinkFactor, "shrink factor, select from (0, 0.5)")
	fl.BoolVarP(&flagPeriodic, "periodic", "p", false, "mesh is periodic: re-stitch opposite domain edges")
	fl.StringVar(&flagPreview, "preview", "", "also render a PNG preview to this path")
	fl.StringVar(&flagConfig, "config", "", "YAML run configuration (flags override)")
	fl.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	runCfg, err := buildRun(cmd)
	if err != nil {
		return err
	}
	if err := runCfg.Validate(); err != nil {
		return err
	}

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	logger.Info("reading files",
		zap.String("input", runCfg.Input),
		zap.String("centroids", runCfg.Centroids))

	meshFile, err := os.Open(runCfg.Input)
	if err != nil {
		return err
	}
	deck, err := inp.ReadMesh(meshFile)
	meshFile.Close()
	if err != nil {
		return err
	}

	centFile, err := os.Open(runCfg.Centroids)
	if err != nil {
		return err
	}
	centroids, err := inp.ReadCentroids(centFile)
	centFile.Close()
	if err != nil {
		return err
	}

	m, err := deck.BuildMesh(centroids)
	if err != nil {
		return err
	}

	logger.Info("generating finite-thickness interface elements",
		zap.Int("nodes", m.Nodes.Len()),
		zap.Int("triangles", len(m.Triangles)),
		zap.Int("cohesives", len(m.Cohesives)),
		zap.Int("grains", len(m.Grains)),
		zap.Float64("sfactor", runCfg.ShrinkFactor),
		zap.Bool("periodic", runCfg.Periodic))

	res, err := shrink.Run(m, shrink.Options{
		Factor:   runCfg.ShrinkFactor,
		Periodic: runCfg.Periodic,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// The output file is only created once the transform has succeeded,
	// so a failed run never leaves a partial deck behind.
	out, err := os.Create(runCfg.OutputPath())
	if err != nil {
		return err
	}
	if err := inp.WriteMesh(out, deck, res.Nodes, res.NewTriangles); err != nil {
		out.Close()
		os.Remove(runCfg.OutputPath())
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if runCfg.Preview != "" {
		if err := render.Preview(m, res, previewWidth, runCfg.Preview); err != nil {
			return err
		}
		logger.Info("preview written", zap.String("path", runCfg.Preview))
	}

	logger.Info("modified input file generated",
		zap.String("output", runCfg.OutputPath()),
		zap.Int("new_elements", len(res.NewTriangles)))
	return nil
}

// buildRun merges the config file (if any) with the command-line flags;
// an explicitly set flag always wins.
func buildRun(cmd *cobra.Command) (config.Run, error) {
	runCfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return runCfg, err
		}
		runCfg = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("input") {
		runCfg.Input = flagInput
	}
	if fl.Changed("centroids") {
		runCfg.Centroids = flagCentroids
	}
	if fl.Changed("output") {
		runCfg.Output = flagOutput
	}
	if fl.Changed("sfactor") {
		runCfg.ShrinkFactor = flagSFactor
	}
	if fl.Changed("periodic") {
		runCfg.Periodic = flagPeriodic
	}
	if fl.Changed("preview") {
		runCfg.Preview = flagPreview
	}
	return runCfg, nil
}

func buildLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if flagVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
